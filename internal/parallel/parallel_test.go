package parallel

import (
	"sync/atomic"
	"testing"
)

func TestChunks_Cover(t *testing.T) {
	strategies := []Strategy{
		Sequential,
		Chunked(4, 1),
		Chunked(3, 10),
		Chunked(16, 7),
		Chunked(8, 0),
		Auto(),
	}
	sizes := []int{1, 2, 9, 10, 11, 100, 1001, 50000}

	for _, s := range strategies {
		for _, n := range sizes {
			chunks := s.Chunks(n)
			if len(chunks) == 0 {
				t.Fatalf("%+v: no chunks for n=%d", s, n)
			}
			next := 0
			for _, c := range chunks {
				if c[0] != next {
					t.Fatalf("%+v n=%d: chunk %v starts at %d, want %d", s, n, c, c[0], next)
				}
				if c[1] <= c[0] {
					t.Fatalf("%+v n=%d: empty chunk %v", s, n, c)
				}
				next = c[1]
			}
			if next != n {
				t.Fatalf("%+v n=%d: chunks end at %d", s, n, next)
			}
			if w := max(s.Workers, 1); len(chunks) > w {
				t.Errorf("%+v n=%d: %d chunks for %d workers", s, n, len(chunks), w)
			}
		}
	}
}

func TestChunks_Inline(t *testing.T) {
	tests := []struct {
		name string
		s    Strategy
		n    int
	}{
		{"sequential", Sequential, 1 << 20},
		{"zero workers", Strategy{}, 1000},
		{"below min chunk", Chunked(8, 100), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := tt.s.Chunks(tt.n)
			if len(chunks) != 1 || chunks[0] != [2]int{0, tt.n} {
				t.Errorf("Chunks(%d) = %v, want single chunk", tt.n, chunks)
			}
		})
	}

	if got := Chunked(4, 1).Chunks(0); got != nil {
		t.Errorf("Chunks(0) = %v, want nil", got)
	}
}

func TestChunks_MinChunkLimitsWorkers(t *testing.T) {
	chunks := Chunked(8, 100).Chunks(350)
	if len(chunks) != 3 {
		t.Errorf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
}

func TestFor_VisitsEachIndexOnce(t *testing.T) {
	for _, s := range []Strategy{Sequential, Chunked(4, 16), Chunked(32, 1)} {
		const n = 10000
		hits := make([]int32, n)

		s.For(n, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})

		for i, h := range hits {
			if h != 1 {
				t.Fatalf("%+v: index %d visited %d times", s, i, h)
			}
		}
	}
}

func TestFor_Empty(t *testing.T) {
	called := false
	Chunked(4, 1).For(0, func(lo, hi int) { called = true })
	if called {
		t.Error("fn called for empty range")
	}
}

func TestForChunks_IndexMatchesChunks(t *testing.T) {
	s := Chunked(4, 10)
	const n = 1000
	chunks := s.Chunks(n)
	seen := make([][2]int, len(chunks))

	s.ForChunks(n, func(c, lo, hi int) {
		seen[c] = [2]int{lo, hi}
	})

	for i := range chunks {
		if seen[i] != chunks[i] {
			t.Errorf("chunk %d ran as %v, want %v", i, seen[i], chunks[i])
		}
	}
}

func BenchmarkFor(b *testing.B) {
	data := make([]float64, 1<<20)
	s := Auto()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.For(len(data), func(lo, hi int) {
			for j := lo; j < hi; j++ {
				data[j] += 1.0
			}
		})
	}
}
