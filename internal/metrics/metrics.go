// Package metrics provides per-step run diagnostics.
package metrics

import (
	"github.com/san-kum/vlasov/internal/grid"
	"github.com/san-kum/vlasov/internal/particles"
)

// Metric accumulates a scalar diagnostic over a run. Observe is called once
// per step after the density has been deposited, starting with step 0.
type Metric interface {
	Name() string
	Observe(step int, t float64, p *particles.Set, rho *grid.Field)
	Value() float64
	Reset()
}

// Standard returns the diagnostics reported by the CLI.
func Standard() []Metric {
	return []Metric{
		NewDensityRange(),
		NewCharge(),
		NewKineticEnergy(),
		NewMomentum(),
	}
}
