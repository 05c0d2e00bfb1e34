package metrics

import (
	"math"

	"github.com/san-kum/vlasov/internal/grid"
	"github.com/san-kum/vlasov/internal/loading"
	"github.com/san-kum/vlasov/internal/particles"
)

// DensityRange tracks the extrema of the most recent density. Its value is
// max - min.
type DensityRange struct {
	name     string
	min, max float64
	samples  int
}

func NewDensityRange() *DensityRange {
	return &DensityRange{name: "density_range"}
}

func (d *DensityRange) Name() string { return d.name }

func (d *DensityRange) Observe(step int, t float64, p *particles.Set, rho *grid.Field) {
	d.min, d.max = rho.MinMax()
	d.samples++
}

func (d *DensityRange) Min() float64 { return d.min }
func (d *DensityRange) Max() float64 { return d.max }

func (d *DensityRange) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.max - d.min
}

func (d *DensityRange) Reset() {
	d.min, d.max = 0, 0
	d.samples = 0
}

// Charge compares the integrated density against the total particle weight
// seen at the first observation. Its value is the largest relative drift,
// which stays at rounding level while deposition conserves weight.
type Charge struct {
	name     string
	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func NewCharge() *Charge {
	return &Charge{name: "charge_drift"}
}

func (c *Charge) Name() string { return c.name }

func (c *Charge) Observe(step int, t float64, p *particles.Set, rho *grid.Field) {
	if c.samples == 0 {
		c.initial = loading.TotalWeight(p)
	}
	c.current = rho.Integral()
	c.samples++

	if c.initial != 0 {
		drift := math.Abs(c.current-c.initial) / math.Abs(c.initial)
		c.maxDrift = math.Max(c.maxDrift, drift)
	}
}

// Total returns the integrated density from the latest observation.
func (c *Charge) Total() float64 { return c.current }

func (c *Charge) Value() float64 { return c.maxDrift }

func (c *Charge) Reset() {
	c.initial = 0
	c.current = 0
	c.maxDrift = 0
	c.samples = 0
}
