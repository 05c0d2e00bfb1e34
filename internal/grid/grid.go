package grid

import "math"

// BoundaryCondition selects how positions and indices outside the domain
// are mapped back into it.
type BoundaryCondition int

const (
	// Periodic identifies xMax with xMin.
	Periodic BoundaryCondition = iota
)

func (bc BoundaryCondition) String() string {
	switch bc {
	case Periodic:
		return "periodic"
	default:
		return "unknown"
	}
}

// Grid is a uniform 1D mesh over [xMin, xMax). The zero value is not
// usable; construct with New.
type Grid struct {
	n      int
	xMin   float64
	xMax   float64
	length float64
	dx     float64
	invDx  float64
	bc     BoundaryCondition
}

type Option func(*Grid)

// WithBoundary sets the boundary condition. Periodic is the default and
// currently the only supported value.
func WithBoundary(bc BoundaryCondition) Option {
	return func(g *Grid) { g.bc = bc }
}

// New builds a grid of n cells spanning [xMin, xMax). It returns an error
// wrapping ErrInvalidArgument when n < 1 or xMin >= xMax.
func New(n int, xMin, xMax float64, opts ...Option) (*Grid, error) {
	if n < 1 {
		return nil, invalidf("grid must have at least one cell, got %d", n)
	}
	// Written so that NaN bounds also fail.
	if !(xMin < xMax) {
		return nil, invalidf("x_min must be less than x_max (got %g, %g)", xMin, xMax)
	}
	length := xMax - xMin
	if math.IsInf(length, 0) {
		return nil, invalidf("domain length overflows (x_min=%g, x_max=%g)", xMin, xMax)
	}

	g := &Grid{
		n:      n,
		xMin:   xMin,
		xMax:   xMax,
		length: length,
		dx:     length / float64(n),
		bc:     Periodic,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.bc != Periodic {
		return nil, invalidf("unsupported boundary condition %d", int(g.bc))
	}
	g.invDx = 1.0 / g.dx
	return g, nil
}

// MustNew is like New but panics on invalid parameters.
func MustNew(n int, xMin, xMax float64, opts ...Option) *Grid {
	g, err := New(n, xMin, xMax, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Cells() int                  { return g.n }
func (g *Grid) XMin() float64               { return g.xMin }
func (g *Grid) XMax() float64               { return g.xMax }
func (g *Grid) Length() float64             { return g.length }
func (g *Grid) Dx() float64                 { return g.dx }
func (g *Grid) Boundary() BoundaryCondition { return g.bc }

func (g *Grid) checkCell(i int) {
	if i < 0 || i >= g.n {
		panic(outOfRange("cell", i, g.n))
	}
}

// CellCenter returns the midpoint of cell i.
func (g *Grid) CellCenter(i int) float64 {
	g.checkCell(i)
	return g.xMin + (float64(i)+0.5)*g.dx
}

// CellLeft returns the left edge of cell i.
func (g *Grid) CellLeft(i int) float64 {
	g.checkCell(i)
	return g.xMin + float64(i)*g.dx
}

// CellRight returns the right edge of cell i.
func (g *Grid) CellRight(i int) float64 {
	g.checkCell(i)
	return g.xMin + float64(i+1)*g.dx
}

// CellCenters returns the midpoints of every cell in index order.
func (g *Grid) CellCenters() []float64 {
	centers := make([]float64, g.n)
	for i := range centers {
		centers[i] = g.xMin + (float64(i)+0.5)*g.dx
	}
	return centers
}

// CellIndex returns the index of the cell containing x after wrapping it
// into the domain. The result is clamped to [0, n-1] so floating-point
// error at the boundary never produces an invalid index.
func (g *Grid) CellIndex(x float64) int {
	return g.cellIndexWrapped(g.WrapPosition(x))
}

func (g *Grid) cellIndexWrapped(xw float64) int {
	f := math.Floor((xw - g.xMin) * g.invDx)
	// !(f >= 0) also catches NaN.
	if !(f >= 0) {
		return 0
	}
	if f >= float64(g.n) {
		return g.n - 1
	}
	return int(f)
}

// InterpolationWeights returns the linear blend between the cell that
// contains x and its periodic right neighbor:
//
//	value = wLeft*field[i] + wRight*field[i+1]
//
// wLeft + wRight == 1.
func (g *Grid) InterpolationWeights(x float64) (wLeft, wRight float64) {
	xw := g.WrapPosition(x)
	idx := g.cellIndexWrapped(xw)
	left := g.xMin + float64(idx)*g.dx

	wRight = (xw - left) * g.invDx
	wLeft = 1.0 - wRight
	return wLeft, wRight
}

// WrapPosition reduces x into [xMin, xMax). Positions already inside the
// domain are returned unchanged, which makes the reduction idempotent.
func (g *Grid) WrapPosition(x float64) float64 {
	if g.Contains(x) {
		return x
	}
	rel := math.Mod(x-g.xMin, g.length)
	if rel < 0 {
		rel += g.length
	}
	xw := g.xMin + rel
	// A tiny negative rel rounds up to length; that point is xMin.
	if xw >= g.xMax {
		return g.xMin
	}
	return xw
}

// WrapIndex reduces any integer index into [0, n).
func (g *Grid) WrapIndex(i int) int {
	i %= g.n
	if i < 0 {
		i += g.n
	}
	return i
}

// Contains reports whether x lies in [xMin, xMax).
func (g *Grid) Contains(x float64) bool {
	return x >= g.xMin && x < g.xMax
}
