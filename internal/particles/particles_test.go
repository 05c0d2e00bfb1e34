package particles

import "testing"

func checkSynced(t *testing.T, s *Set) {
	t.Helper()
	if len(s.X()) != s.Len() || len(s.V()) != s.Len() || len(s.F()) != s.Len() {
		t.Fatalf("arrays out of sync: x=%d v=%d f=%d len=%d", len(s.X()), len(s.V()), len(s.F()), s.Len())
	}
}

func TestZeroValue(t *testing.T) {
	var s Set
	if s.Len() != 0 || !s.Empty() {
		t.Errorf("zero value should be empty, len=%d", s.Len())
	}
	s.Push(1, 2, 3)
	if s.Len() != 1 {
		t.Errorf("expected 1 sample after push, got %d", s.Len())
	}
}

func TestNew(t *testing.T) {
	s := New(100)
	if s.Len() != 0 {
		t.Errorf("expected empty set, got %d", s.Len())
	}
	if s.Cap() < 100 {
		t.Errorf("expected capacity >= 100, got %d", s.Cap())
	}
}

func TestNewFilled(t *testing.T) {
	s := NewFilled(10, 1.0, 2.0, 3.0)
	if s.Len() != 10 {
		t.Fatalf("expected 10 samples, got %d", s.Len())
	}
	for i := 0; i < s.Len(); i++ {
		if x, v, f := s.At(i); x != 1 || v != 2 || f != 3 {
			t.Errorf("sample %d = (%g, %g, %g)", i, x, v, f)
		}
	}
	checkSynced(t, s)
}

func TestReserve(t *testing.T) {
	s := New(0)
	s.Push(1, 2, 3)

	s.Reserve(1000)
	if s.Cap() < 1000 {
		t.Errorf("expected capacity >= 1000, got %d", s.Cap())
	}
	if s.Len() != 1 || s.XAt(0) != 1 || s.VAt(0) != 2 || s.FAt(0) != 3 {
		t.Error("reserve changed contents")
	}

	before := s.Cap()
	s.Reserve(10)
	if s.Cap() != before {
		t.Errorf("smaller reserve shrank capacity: %d -> %d", before, s.Cap())
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		resize  int
	}{
		{"grow from empty", 0, 10},
		{"grow", 3, 8},
		{"shrink", 8, 3},
		{"to zero", 5, 0},
		{"same", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFilled(tt.initial, 7, 8, 9)
			s.Resize(tt.resize)

			if s.Len() != tt.resize {
				t.Fatalf("expected %d samples, got %d", tt.resize, s.Len())
			}
			checkSynced(t, s)
			for i := 0; i < s.Len(); i++ {
				x, v, f := s.At(i)
				if i < tt.initial && (x != 7 || v != 8 || f != 9) {
					t.Errorf("existing sample %d changed: (%g, %g, %g)", i, x, v, f)
				}
				if i >= tt.initial && (x != 0 || v != 0 || f != 0) {
					t.Errorf("new sample %d not zero: (%g, %g, %g)", i, x, v, f)
				}
			}
		})
	}
}

func TestResizeFilled(t *testing.T) {
	s := NewFilled(2, 0, 0, 0)
	s.ResizeFilled(5, 1.0, 2.0, 3.0)

	if s.Len() != 5 {
		t.Fatalf("expected 5 samples, got %d", s.Len())
	}
	if s.XAt(1) != 0 {
		t.Error("existing sample overwritten")
	}
	if x, v, f := s.At(4); x != 1 || v != 2 || f != 3 {
		t.Errorf("new sample = (%g, %g, %g), want (1, 2, 3)", x, v, f)
	}
}

func TestResize_SlotsReusedAfterShrinkAreReset(t *testing.T) {
	s := NewFilled(4, 5, 5, 5)
	s.Resize(1)
	s.Resize(4)

	for i := 1; i < 4; i++ {
		if x, v, f := s.At(i); x != 0 || v != 0 || f != 0 {
			t.Errorf("sample %d = (%g, %g, %g), want zero", i, x, v, f)
		}
	}
}

func TestClear(t *testing.T) {
	s := NewFilled(10, 1, 2, 3)
	capBefore := s.Cap()

	s.Clear()
	if !s.Empty() {
		t.Errorf("expected empty after clear, got %d", s.Len())
	}
	if s.Cap() != capBefore {
		t.Errorf("clear released capacity: %d -> %d", capBefore, s.Cap())
	}
	checkSynced(t, s)
}

func TestIndexAccess(t *testing.T) {
	s := NewFilled(3, 0, 0, 0)
	s.SetX(0, 1.0)
	s.SetV(1, 2.0)
	s.SetF(2, 3.0)

	if s.XAt(0) != 1.0 || s.VAt(1) != 2.0 || s.FAt(2) != 3.0 {
		t.Errorf("indexed access: x0=%g v1=%g f2=%g", s.XAt(0), s.VAt(1), s.FAt(2))
	}

	s.Set(1, 4, 5, 6)
	if x, v, f := s.At(1); x != 4 || v != 5 || f != 6 {
		t.Errorf("At(1) = (%g, %g, %g)", x, v, f)
	}
}

func TestIndexAccess_OutOfRangePanics(t *testing.T) {
	s := NewFilled(2, 0, 0, 0)

	calls := map[string]func(){
		"x at -1":  func() { s.XAt(-1) },
		"v at len": func() { s.VAt(2) },
		"set f":    func() { s.SetF(5, 1) },
		"at":       func() { s.At(2) },
		"swap":     func() { s.Swap(0, 2) },
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

func TestBulkAccess(t *testing.T) {
	s := NewFilled(5, 1, 2, 3)

	xs, vs, fs := s.X(), s.V(), s.F()
	if len(xs) != 5 || len(vs) != 5 || len(fs) != 5 {
		t.Fatalf("bulk lengths = %d %d %d", len(xs), len(vs), len(fs))
	}

	xs[0] = 100.0
	vs[4] = -1.0
	if s.XAt(0) != 100.0 || s.VAt(4) != -1.0 {
		t.Error("write through bulk view not visible")
	}
}

func TestPushPop(t *testing.T) {
	s := New(0)
	s.Push(1, 2, 3)
	s.Push(4, 5, 6)

	if s.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", s.Len())
	}
	if x, v, f := s.At(1); x != 4 || v != 5 || f != 6 {
		t.Errorf("sample 1 = (%g, %g, %g)", x, v, f)
	}

	x, v, f := s.Pop()
	if x != 4 || v != 5 || f != 6 {
		t.Errorf("Pop() = (%g, %g, %g), want (4, 5, 6)", x, v, f)
	}
	if s.Len() != 1 || s.XAt(0) != 1 {
		t.Errorf("after pop: len=%d x0=%g", s.Len(), s.XAt(0))
	}
	checkSynced(t, s)
}

func TestPush_Growth(t *testing.T) {
	s := New(0)
	for i := 0; i < 10000; i++ {
		s.Push(float64(i), float64(-i), 1)
		if s.Cap() < s.Len() {
			t.Fatalf("capacity %d below length %d", s.Cap(), s.Len())
		}
	}
	checkSynced(t, s)
	if s.XAt(9999) != 9999 || s.VAt(9999) != -9999 {
		t.Errorf("last sample = (%g, %g)", s.XAt(9999), s.VAt(9999))
	}
}

func TestPop_EmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic popping empty set")
		}
	}()
	New(4).Pop()
}

func TestSwap(t *testing.T) {
	s := New(2)
	s.Push(1, 2, 3)
	s.Push(4, 5, 6)

	s.Swap(0, 1)
	if x, v, f := s.At(0); x != 4 || v != 5 || f != 6 {
		t.Errorf("sample 0 after swap = (%g, %g, %g)", x, v, f)
	}
	if x, v, f := s.At(1); x != 1 || v != 2 || f != 3 {
		t.Errorf("sample 1 after swap = (%g, %g, %g)", x, v, f)
	}
}

func TestClone(t *testing.T) {
	s := NewFilled(5, 1, 2, 3)
	c := s.Clone()

	s.SetX(0, 99)
	if c.XAt(0) != 1 {
		t.Error("clone shares storage with original")
	}
	if c.Len() != 5 {
		t.Errorf("clone has %d samples, want 5", c.Len())
	}
}

func TestLargeAllocation(t *testing.T) {
	const n = 1_000_000
	s := NewFilled(n, 0.1, 0.2, 0.3)

	if s.Len() != n {
		t.Fatalf("expected %d samples, got %d", n, s.Len())
	}
	if s.XAt(0) != 0.1 || s.XAt(n-1) != 0.1 {
		t.Errorf("endpoints = %g, %g", s.XAt(0), s.XAt(n-1))
	}
}

func BenchmarkPush(b *testing.B) {
	s := New(0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Push(float64(i), 1, 1)
	}
}
