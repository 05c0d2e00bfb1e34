package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/vlasov/internal/grid"
	"github.com/san-kum/vlasov/internal/particles"
)

// KineticEnergy reports sum(f * v^2 / 2) at the latest step.
type KineticEnergy struct {
	name    string
	energy  float64
	initial float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(step int, t float64, p *particles.Set, rho *grid.Field) {
	vs, fs := p.V(), p.F()
	sum := 0.0
	for i, v := range vs {
		sum += fs[i] * v * v
	}
	k.energy = 0.5 * sum
	if k.samples == 0 {
		k.initial = k.energy
	}
	k.samples++
}

// Change returns the energy gained since the first observation.
func (k *KineticEnergy) Change() float64 { return k.energy - k.initial }

func (k *KineticEnergy) Value() float64 { return k.energy }

func (k *KineticEnergy) Reset() {
	k.energy = 0
	k.initial = 0
	k.samples = 0
}

// Momentum reports sum(f * v) at the latest step.
type Momentum struct {
	name     string
	momentum float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(step int, t float64, p *particles.Set, rho *grid.Field) {
	m.momentum = floats.Dot(p.F(), p.V())
}

func (m *Momentum) Value() float64 { return m.momentum }

func (m *Momentum) Reset() { m.momentum = 0 }
