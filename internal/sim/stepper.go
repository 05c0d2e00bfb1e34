package sim

import (
	"github.com/san-kum/vlasov/internal/grid"
	"github.com/san-kum/vlasov/internal/particles"
	"github.com/san-kum/vlasov/internal/transport"
)

// Stepper advances a particle set one step at a time and keeps the
// density current. It retains a copy of the initial particles so the
// state can be rewound with Reset.
type Stepper struct {
	grid    *grid.Grid
	kernels transport.Kernels
	initial *particles.Set
	p       *particles.Set
	rho     *grid.Field

	dt    float64
	accel float64
	step  int
}

// NewStepper takes ownership of p. The density is deposited immediately so
// Density reflects step 0.
func NewStepper(g *grid.Grid, p *particles.Set, k transport.Kernels, dt, accel float64) *Stepper {
	s := &Stepper{
		grid:    g,
		kernels: k,
		initial: p.Clone(),
		p:       p,
		rho:     grid.NewField(g, 0),
		dt:      dt,
		accel:   accel,
	}
	s.kernels.DepositDensity(s.p, s.grid, s.rho)
	return s
}

// Step performs one free-streaming step: advance positions, apply the
// uniform kick if any, wrap, and redeposit.
func (s *Stepper) Step() {
	s.kernels.AdvancePositions(s.p, s.dt)
	if s.accel != 0 {
		s.kernels.AdvanceVelocities(s.p, s.accel, s.dt)
	}
	s.kernels.WrapPositions(s.p, s.grid)
	s.kernels.DepositDensity(s.p, s.grid, s.rho)
	s.step++
}

// Reset restores the initial particles and density.
func (s *Stepper) Reset() {
	s.p.Resize(s.initial.Len())
	copy(s.p.X(), s.initial.X())
	copy(s.p.V(), s.initial.V())
	copy(s.p.F(), s.initial.F())
	s.step = 0
	s.kernels.DepositDensity(s.p, s.grid, s.rho)
}

func (s *Stepper) Grid() *grid.Grid           { return s.grid }
func (s *Stepper) Particles() *particles.Set  { return s.p }
func (s *Stepper) Density() *grid.Field       { return s.rho }
func (s *Stepper) StepCount() int             { return s.step }
func (s *Stepper) Time() float64              { return float64(s.step) * s.dt }
func (s *Stepper) Kernels() transport.Kernels { return s.kernels }
