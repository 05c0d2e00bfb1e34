// Package parallel splits index ranges into disjoint chunks and runs them
// on a bounded number of goroutines.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultMinChunk is the smallest range worth handing to a separate
// goroutine when a Strategy leaves MinChunk unset.
const DefaultMinChunk = 4096

// Strategy describes how a range [0, n) is executed. Workers <= 1 runs
// everything on the calling goroutine.
type Strategy struct {
	Workers  int
	MinChunk int
}

// Sequential runs every range inline.
var Sequential = Strategy{Workers: 1}

// Chunked returns a strategy using up to workers goroutines, never giving
// a goroutine fewer than minChunk indices.
func Chunked(workers, minChunk int) Strategy {
	return Strategy{Workers: workers, MinChunk: minChunk}
}

// Auto uses one worker per CPU.
func Auto() Strategy {
	return Strategy{Workers: runtime.NumCPU(), MinChunk: DefaultMinChunk}
}

func (s Strategy) minChunk() int {
	if s.MinChunk < 1 {
		return DefaultMinChunk
	}
	return s.MinChunk
}

// IsSequential reports whether s never spawns goroutines.
func (s Strategy) IsSequential() bool { return s.Workers <= 1 }

// Chunks returns the partition For uses for n indices. The chunks are
// contiguous, non-empty, ordered and cover [0, n) exactly once.
func (s Strategy) Chunks(n int) [][2]int {
	if n <= 0 {
		return nil
	}
	minChunk := s.minChunk()
	if s.Workers <= 1 || n <= minChunk {
		return [][2]int{{0, n}}
	}

	workers := min(s.Workers, n/minChunk)
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers

	chunks := make([][2]int, 0, workers)
	for lo := 0; lo < n; lo += size {
		chunks = append(chunks, [2]int{lo, min(lo+size, n)})
	}
	return chunks
}

// For calls fn once per chunk of [0, n) and returns after every call has
// finished. Calls may run concurrently, so fn must only write state owned
// by its own range.
func (s Strategy) For(n int, fn func(lo, hi int)) {
	s.ForChunks(n, func(_ int, lo, hi int) { fn(lo, hi) })
}

// ForChunks is For with the chunk's position in Chunks(n) passed to fn,
// for callers that keep one accumulator per chunk.
func (s Strategy) ForChunks(n int, fn func(chunk, lo, hi int)) {
	chunks := s.Chunks(n)
	if len(chunks) == 1 {
		fn(0, chunks[0][0], chunks[0][1])
		return
	}

	var g errgroup.Group
	g.SetLimit(s.Workers)
	for i, c := range chunks {
		i, c := i, c
		g.Go(func() error {
			fn(i, c[0], c[1])
			return nil
		})
	}
	_ = g.Wait()
}
