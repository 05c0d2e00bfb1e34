// Package transport implements the bulk particle kernels of a
// particle-mesh step: free streaming, uniform acceleration, periodic
// wrapping and nearest-grid-point density deposition.
//
// The package-level functions run sequentially. A Kernels value runs the
// same kernels under a parallel.Strategy:
//
//	k := transport.New(parallel.Auto())
//	k.AdvancePositions(p, dt)
//	k.WrapPositions(p, g)
//	k.DepositDensity(p, g, rho)
//
// Every kernel processes the particles in place and touches each sample
// exactly once. None of them allocate except the parallel deposition,
// which keeps one partial density array per chunk.
package transport

import (
	"fmt"

	"github.com/san-kum/vlasov/internal/grid"
	"github.com/san-kum/vlasov/internal/parallel"
	"github.com/san-kum/vlasov/internal/particles"
)

// Kernels runs the transport kernels under a fixed execution strategy.
type Kernels struct {
	strategy parallel.Strategy
}

func New(s parallel.Strategy) Kernels {
	return Kernels{strategy: s}
}

func (k Kernels) Strategy() parallel.Strategy { return k.strategy }

var sequential = Kernels{strategy: parallel.Sequential}

// AdvancePositions applies x += v*dt to every particle.
func AdvancePositions(p *particles.Set, dt float64) { sequential.AdvancePositions(p, dt) }

// AdvanceVelocities applies v += a*dt to every particle.
func AdvanceVelocities(p *particles.Set, a, dt float64) { sequential.AdvanceVelocities(p, a, dt) }

// WrapPositions folds every position into the grid's domain.
func WrapPositions(p *particles.Set, g *grid.Grid) { sequential.WrapPositions(p, g) }

// DepositDensity overwrites rho with the nearest-grid-point density of p.
func DepositDensity(p *particles.Set, g *grid.Grid, rho *grid.Field) {
	sequential.DepositDensity(p, g, rho)
}

func (k Kernels) AdvancePositions(p *particles.Set, dt float64) {
	xs, vs := p.X(), p.V()
	k.strategy.For(len(xs), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			xs[i] += vs[i] * dt
		}
	})
}

func (k Kernels) AdvanceVelocities(p *particles.Set, a, dt float64) {
	vs := p.V()
	dv := a * dt
	k.strategy.For(len(vs), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			vs[i] += dv
		}
	})
}

func (k Kernels) WrapPositions(p *particles.Set, g *grid.Grid) {
	xs := p.X()
	k.strategy.For(len(xs), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			xs[i] = g.WrapPosition(xs[i])
		}
	})
}

// DepositDensity zeroes rho and adds f/dx of every particle to the cell
// containing it. Positions need not be wrapped first. It panics if rho
// does not have one value per cell of g.
//
// With more than one chunk each chunk accumulates into its own array and
// the arrays are summed in chunk order afterwards. The result matches the
// sequential deposit up to floating-point reassociation.
func (k Kernels) DepositDensity(p *particles.Set, g *grid.Grid, rho *grid.Field) {
	if rho.Len() != g.Cells() {
		panic(fmt.Sprintf("transport: density field has %d cells, grid has %d", rho.Len(), g.Cells()))
	}

	out := rho.Values()
	rho.Zero()

	xs, fs := p.X(), p.F()
	invDx := 1.0 / g.Dx()

	chunks := k.strategy.Chunks(len(xs))
	if len(chunks) <= 1 {
		depositRange(out, xs, fs, g, invDx, 0, len(xs))
		return
	}

	partials := make([][]float64, len(chunks))
	k.strategy.ForChunks(len(xs), func(c, lo, hi int) {
		local := make([]float64, len(out))
		depositRange(local, xs, fs, g, invDx, lo, hi)
		partials[c] = local
	})

	for _, local := range partials {
		for j, v := range local {
			out[j] += v
		}
	}
}

func depositRange(dst, xs, fs []float64, g *grid.Grid, invDx float64, lo, hi int) {
	for i := lo; i < hi; i++ {
		dst[g.CellIndex(xs[i])] += fs[i] * invDx
	}
}
