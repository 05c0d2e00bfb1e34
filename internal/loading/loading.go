// Package loading builds initial particle sets.
package loading

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/vlasov/internal/grid"
	"github.com/san-kum/vlasov/internal/particles"
)

// ErrInvalidParams indicates loading parameters that cannot produce a
// distribution.
var ErrInvalidParams = errors.New("loading: invalid parameters")

// VelocityExtent is the half-width of the sampled velocity range in units
// of the thermal velocity.
const VelocityExtent = 4.0

// Params describes a Maxwellian with a cosine density perturbation:
//
//	f(x, v) = exp(-v²/2vth²) / (sqrt(2π) vth) * (1 + epsilon*cos(k*x))
type Params struct {
	PerCell  int     `yaml:"per_cell"`
	VThermal float64 `yaml:"v_thermal"`
	Epsilon  float64 `yaml:"epsilon"`
	K        float64 `yaml:"k"`
}

// DefaultParams is a single-wavelength 10% perturbation of a unit
// Maxwellian with 32 samples per cell.
func DefaultParams() Params {
	return Params{PerCell: 32, VThermal: 1.0, Epsilon: 0.1, K: 1.0}
}

func (p Params) Validate() error {
	if p.PerCell < 1 {
		return fmt.Errorf("%w: per_cell must be at least 1, got %d", ErrInvalidParams, p.PerCell)
	}
	if !(p.VThermal > 0) || math.IsInf(p.VThermal, 0) {
		return fmt.Errorf("%w: v_thermal must be positive and finite, got %g", ErrInvalidParams, p.VThermal)
	}
	if math.IsNaN(p.Epsilon) || math.IsNaN(p.K) {
		return fmt.Errorf("%w: epsilon and k must be numbers", ErrInvalidParams)
	}
	return nil
}

// Velocities returns the PerCell sample velocities: midpoints of equal
// bins over [-4vth, 4vth].
func (p Params) Velocities() []float64 {
	vMax := VelocityExtent * p.VThermal
	dv := 2 * vMax / float64(p.PerCell)
	vs := make([]float64, p.PerCell)
	if len(vs) == 1 {
		vs[0] = 0
		return vs
	}
	return floats.Span(vs, -vMax+0.5*dv, vMax-0.5*dv)
}

// Maxwellian places PerCell samples at every cell center of g, one per
// velocity bin, weighted by the perturbed Maxwellian. Samples are ordered
// by cell, then by velocity.
func Maxwellian(g *grid.Grid, p Params) (*particles.Set, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	vs := p.Velocities()
	maxwell := make([]float64, len(vs))
	norm := 1.0 / (math.Sqrt(2*math.Pi) * p.VThermal)
	for j, v := range vs {
		maxwell[j] = math.Exp(-v*v/(2*p.VThermal*p.VThermal)) * norm
	}

	set := particles.New(g.Cells() * len(vs))
	for _, x := range g.CellCenters() {
		factor := 1.0 + p.Epsilon*math.Cos(p.K*x)
		for j, v := range vs {
			set.Push(x, v, maxwell[j]*factor)
		}
	}
	return set, nil
}

// TotalWeight returns the sum of all sample weights.
func TotalWeight(p *particles.Set) float64 {
	return floats.Sum(p.F())
}
