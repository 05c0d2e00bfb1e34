package grid

import "gonum.org/v1/gonum/floats"

// Field stores one value per cell of a Grid. It holds a shared handle to
// the Grid and never modifies it.
type Field struct {
	grid *Grid
	data []float64
}

// NewField allocates a field on g with every cell set to fill.
func NewField(g *Grid, fill float64) *Field {
	if g == nil {
		panic("grid: NewField called with nil grid")
	}
	f := &Field{grid: g, data: make([]float64, g.n)}
	if fill != 0 {
		f.Fill(fill)
	}
	return f
}

func (f *Field) Grid() *Grid { return f.grid }
func (f *Field) Len() int    { return len(f.data) }

// Values returns the backing storage. Writes through the slice update the
// field; its length always equals Grid().Cells().
func (f *Field) Values() []float64 { return f.data }

func (f *Field) check(i int) {
	if i < 0 || i >= len(f.data) {
		panic(outOfRange("field", i, len(f.data)))
	}
}

func (f *Field) At(i int) float64 {
	f.check(i)
	return f.data[i]
}

func (f *Field) Set(i int, v float64) {
	f.check(i)
	f.data[i] = v
}

// Add accumulates v into cell i.
func (f *Field) Add(i int, v float64) {
	f.check(i)
	f.data[i] += v
}

func (f *Field) Fill(v float64) {
	for i := range f.data {
		f.data[i] = v
	}
}

func (f *Field) Zero() { clear(f.data) }

// Interpolate returns the linearly interpolated value at x. It reproduces
// the stored value exactly at a cell's left edge and blends with cell 0
// past the last cell.
func (f *Field) Interpolate(x float64) float64 {
	idx := f.grid.CellIndex(x)
	wLeft, wRight := f.grid.InterpolationWeights(x)
	next := f.grid.WrapIndex(idx + 1)
	return wLeft*f.data[idx] + wRight*f.data[next]
}

func (f *Field) Sum() float64 { return floats.Sum(f.data) }

// Integral returns Sum()*dx, the quadrature of the field over the domain.
func (f *Field) Integral() float64 { return f.Sum() * f.grid.dx }

func (f *Field) MinMax() (lo, hi float64) {
	return floats.Min(f.data), floats.Max(f.data)
}

// Clone returns a deep copy sharing the same Grid.
func (f *Field) Clone() *Field {
	c := &Field{grid: f.grid, data: make([]float64, len(f.data))}
	copy(c.data, f.data)
	return c
}
