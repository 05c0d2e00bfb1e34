package sim

import (
	"time"

	"github.com/san-kum/vlasov/internal/grid"
	"github.com/san-kum/vlasov/internal/particles"
)

// Observer is notified after every step, including step 0, once the
// density has been deposited. It must not retain p or rho.
type Observer interface {
	OnStep(step int, t float64, p *particles.Set, rho *grid.Field)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, t float64, p *particles.Set, rho *grid.Field)

func (f ObserverFunc) OnStep(step int, t float64, p *particles.Set, rho *grid.Field) {
	f(step, t, p, rho)
}

type Config struct {
	Dt    float64
	Steps int

	// PrintEvery is the snapshot interval in steps. Step 0 and the final
	// step are always recorded; zero records only those two.
	PrintEvery int

	// Acceleration is a uniform velocity kick applied every step.
	Acceleration float64

	// ValidateState stops the run when the density becomes non-finite.
	ValidateState bool
}

// Snapshot is a copy of the density at one step.
type Snapshot struct {
	Step    int       `json:"step"`
	Time    float64   `json:"time"`
	Density []float64 `json:"density"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
}

type Result struct {
	Snapshots  []Snapshot
	Metrics    map[string]float64
	StepsTaken int
	Particles  int
	Elapsed    time.Duration
}

// Final returns the last recorded snapshot, or false if there is none.
func (r *Result) Final() (Snapshot, bool) {
	if len(r.Snapshots) == 0 {
		return Snapshot{}, false
	}
	return r.Snapshots[len(r.Snapshots)-1], true
}
