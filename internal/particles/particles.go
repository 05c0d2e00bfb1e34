// Package particles provides a structure-of-arrays container for
// phase-space samples.
//
// Each sample has a position x, a velocity v and a weight f (the sampled
// distribution-function value). The three attributes are stored in
// separate contiguous slices so bulk kernels can stream over one of them
// without touching the others:
//
//	p := particles.New(1000)
//	p.Push(0.5, 1.0, 0.1)
//	xs := p.X() // every position, in place
//
// Every exported mutation keeps the three slices the same length. Sample
// order carries no meaning; samples may be swapped or removed from the
// tail freely.
package particles

import "fmt"

// Set holds phase-space samples. The zero value is an empty set ready
// for use.
type Set struct {
	x []float64
	v []float64
	f []float64
}

// New returns an empty set with room for capacity samples.
func New(capacity int) *Set {
	s := &Set{}
	s.Reserve(capacity)
	return s
}

// NewFilled returns a set of n samples all equal to (x, v, f).
func NewFilled(n int, x, v, f float64) *Set {
	s := &Set{}
	s.ResizeFilled(n, x, v, f)
	return s
}

func (s *Set) Len() int    { return len(s.x) }
func (s *Set) Empty() bool { return len(s.x) == 0 }

// Cap returns the number of samples the set can hold without growing.
func (s *Set) Cap() int { return min(cap(s.x), cap(s.v), cap(s.f)) }

// Reserve grows capacity to at least n. Length and contents are kept.
func (s *Set) Reserve(n int) {
	if n <= s.Cap() {
		return
	}
	s.x = grow(s.x, n)
	s.v = grow(s.v, n)
	s.f = grow(s.f, n)
}

func grow(a []float64, n int) []float64 {
	if cap(a) >= n {
		return a
	}
	b := make([]float64, len(a), n)
	copy(b, a)
	return b
}

// Resize sets the length to n. New samples are zero.
func (s *Set) Resize(n int) { s.ResizeFilled(n, 0, 0, 0) }

// ResizeFilled sets the length to n. New samples are (x, v, f).
func (s *Set) ResizeFilled(n int, x, v, f float64) {
	if n < 0 {
		panic(fmt.Sprintf("particles: negative size %d", n))
	}
	old := len(s.x)
	if n <= old {
		s.x, s.v, s.f = s.x[:n], s.v[:n], s.f[:n]
		return
	}
	s.Reserve(n)
	s.x, s.v, s.f = s.x[:n], s.v[:n], s.f[:n]
	fillTail(s.x, old, x)
	fillTail(s.v, old, v)
	fillTail(s.f, old, f)
}

func fillTail(a []float64, from int, val float64) {
	for i := from; i < len(a); i++ {
		a[i] = val
	}
}

// Clear drops every sample but keeps the allocated capacity.
func (s *Set) Clear() {
	s.x, s.v, s.f = s.x[:0], s.v[:0], s.f[:0]
}

// X returns all positions. The slice aliases the set's storage; writes
// are visible to the set.
func (s *Set) X() []float64 { return s.x }

// V returns all velocities, aliasing the set's storage.
func (s *Set) V() []float64 { return s.v }

// F returns all weights, aliasing the set's storage.
func (s *Set) F() []float64 { return s.f }

func (s *Set) check(i int) {
	if i < 0 || i >= len(s.x) {
		panic(fmt.Sprintf("particles: index %d out of range [0, %d)", i, len(s.x)))
	}
}

func (s *Set) XAt(i int) float64 { s.check(i); return s.x[i] }
func (s *Set) VAt(i int) float64 { s.check(i); return s.v[i] }
func (s *Set) FAt(i int) float64 { s.check(i); return s.f[i] }

func (s *Set) SetX(i int, x float64) { s.check(i); s.x[i] = x }
func (s *Set) SetV(i int, v float64) { s.check(i); s.v[i] = v }
func (s *Set) SetF(i int, f float64) { s.check(i); s.f[i] = f }

// At returns sample i.
func (s *Set) At(i int) (x, v, f float64) {
	s.check(i)
	return s.x[i], s.v[i], s.f[i]
}

// Set overwrites sample i.
func (s *Set) Set(i int, x, v, f float64) {
	s.check(i)
	s.x[i], s.v[i], s.f[i] = x, v, f
}

// Push appends a sample. Capacity for all three slices is secured before
// any of them is written, so a failed growth leaves the set unchanged.
func (s *Set) Push(x, v, f float64) {
	n := len(s.x)
	if n == s.Cap() {
		s.Reserve(max(2*n, 8))
	}
	s.x = append(s.x, x)
	s.v = append(s.v, v)
	s.f = append(s.f, f)
}

// Pop removes and returns the last sample. It panics on an empty set.
func (s *Set) Pop() (x, v, f float64) {
	n := len(s.x)
	if n == 0 {
		panic("particles: Pop on empty set")
	}
	x, v, f = s.x[n-1], s.v[n-1], s.f[n-1]
	s.x, s.v, s.f = s.x[:n-1], s.v[:n-1], s.f[:n-1]
	return x, v, f
}

// Swap exchanges samples i and j.
func (s *Set) Swap(i, j int) {
	s.check(i)
	s.check(j)
	s.x[i], s.x[j] = s.x[j], s.x[i]
	s.v[i], s.v[j] = s.v[j], s.v[i]
	s.f[i], s.f[j] = s.f[j], s.f[i]
}

// Clone returns a deep copy with capacity equal to its length.
func (s *Set) Clone() *Set {
	c := New(len(s.x))
	c.x = append(c.x, s.x...)
	c.v = append(c.v, s.v...)
	c.f = append(c.f, s.f...)
	return c
}
