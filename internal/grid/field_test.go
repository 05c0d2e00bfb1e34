package grid

import (
	"math"
	"testing"
)

func TestNewField(t *testing.T) {
	g := MustNew(10, 0, 10)

	f := NewField(g, 0)
	if f.Len() != 10 {
		t.Fatalf("expected 10 values, got %d", f.Len())
	}
	for i := 0; i < f.Len(); i++ {
		if f.At(i) != 0 {
			t.Errorf("cell %d = %g, want 0", i, f.At(i))
		}
	}

	f = NewField(g, 5.0)
	for i, v := range f.Values() {
		if v != 5.0 {
			t.Errorf("cell %d = %g, want 5", i, v)
		}
	}

	if f.Grid() != g {
		t.Error("field does not reference its grid")
	}
}

func TestNewField_NilGridPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil grid")
		}
	}()
	NewField(nil, 0)
}

func TestField_Access(t *testing.T) {
	f := NewField(MustNew(10, 0, 10), 0)

	f.Set(5, 42.0)
	if f.At(5) != 42.0 {
		t.Errorf("At(5) = %g, want 42", f.At(5))
	}

	f.Add(5, 1.5)
	if f.At(5) != 43.5 {
		t.Errorf("At(5) after Add = %g, want 43.5", f.At(5))
	}

	vals := f.Values()
	vals[0] = 999.0
	if f.At(0) != 999.0 {
		t.Error("write through Values() not visible")
	}
}

func TestField_OutOfRangePanics(t *testing.T) {
	f := NewField(MustNew(4, 0, 4), 0)

	calls := map[string]func(){
		"at -1":  func() { f.At(-1) },
		"set n":  func() { f.Set(4, 1) },
		"add 10": func() { f.Add(10, 1) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			call()
		})
	}
}

func TestField_FillZero(t *testing.T) {
	f := NewField(MustNew(10, 0, 10), 5.0)

	f.Fill(3.14)
	for i, v := range f.Values() {
		if v != 3.14 {
			t.Errorf("cell %d = %g after Fill", i, v)
		}
	}

	f.Zero()
	for i, v := range f.Values() {
		if v != 0 {
			t.Errorf("cell %d = %g after Zero", i, v)
		}
	}
}

func TestField_InterpolateConstant(t *testing.T) {
	grids := []*Grid{
		MustNew(10, 0, 10),
		MustNew(64, 0, 2*math.Pi),
		MustNew(5, -1.7, 3.1),
	}
	positions := []float64{0, 0.3, 5.5, 9.9, 10, 12.25, -0.7, -33.1, 1e3}

	for _, g := range grids {
		f := NewField(g, 5.0)
		for _, x := range positions {
			if got := f.Interpolate(x); math.Abs(got-5.0) > 1e-12 {
				t.Errorf("grid [%g,%g): Interpolate(%g) = %g, want 5", g.XMin(), g.XMax(), x, got)
			}
		}
	}
}

func TestField_InterpolateLinear(t *testing.T) {
	f := NewField(MustNew(4, 0, 4), 0)
	for i := range f.Values() {
		f.Set(i, float64(i))
	}

	if got := f.Interpolate(0.0); got != 0.0 {
		t.Errorf("Interpolate(0) = %g, want 0", got)
	}
	if got := f.Interpolate(1.5); got != 1.5 {
		t.Errorf("Interpolate(1.5) = %g, want 1.5", got)
	}
	// Past the last cell the blend is with cell 0.
	if got := f.Interpolate(3.5); got != 1.5 {
		t.Errorf("Interpolate(3.5) = %g, want 1.5", got)
	}
}

func TestField_InterpolateLeftEdgeExact(t *testing.T) {
	g := MustNew(8, 0, 8)
	f := NewField(g, 0)
	for i := range f.Values() {
		f.Set(i, math.Sqrt(float64(i)+1))
	}

	for i := 0; i < g.Cells(); i++ {
		x := g.CellLeft(i)
		if wl, wr := g.InterpolationWeights(x); wl != 1 || wr != 0 {
			t.Errorf("weights at left edge of %d = (%g, %g)", i, wl, wr)
		}
		if got := f.Interpolate(x); got != f.At(i) {
			t.Errorf("Interpolate(CellLeft(%d)) = %g, want %g", i, got, f.At(i))
		}
	}
}

func TestField_InterpolatePeriodic(t *testing.T) {
	f := NewField(MustNew(4, 0, 4), 0)
	copy(f.Values(), []float64{0, 1, 2, 1})

	if got, want := f.Interpolate(4.5), f.Interpolate(0.5); got != want {
		t.Errorf("Interpolate(4.5) = %g, want %g", got, want)
	}
	if got, want := f.Interpolate(-3.5), f.Interpolate(0.5); got != want {
		t.Errorf("Interpolate(-3.5) = %g, want %g", got, want)
	}
}

func TestField_Reductions(t *testing.T) {
	f := NewField(MustNew(4, 0, 2), 0)
	copy(f.Values(), []float64{1, -2, 3, 4})

	if f.Sum() != 6 {
		t.Errorf("Sum() = %g, want 6", f.Sum())
	}
	if f.Integral() != 3 {
		t.Errorf("Integral() = %g, want 3", f.Integral())
	}
	if lo, hi := f.MinMax(); lo != -2 || hi != 4 {
		t.Errorf("MinMax() = (%g, %g), want (-2, 4)", lo, hi)
	}
}

func TestField_Clone(t *testing.T) {
	f1 := NewField(MustNew(10, 0, 10), 1.0)
	f1.Set(5, 42.0)

	f2 := f1.Clone()
	f1.Set(5, 0)

	if f2.At(5) != 42.0 {
		t.Errorf("clone changed with original: %g", f2.At(5))
	}
	if f2.Grid() != f1.Grid() {
		t.Error("clone should share the grid")
	}
}
