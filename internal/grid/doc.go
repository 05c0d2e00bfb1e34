// Package grid provides the one-dimensional periodic mesh and the scalar
// fields that live on it.
//
// The package defines two types:
//
//   - [Grid]: immutable uniform discretization of [xMin, xMax)
//   - [Field]: one float64 per cell, bound to a Grid
//
// Grid layout (cell-centered):
//
//	xMin                                           xMax
//	  |-------|-------|-------|-------|-------|-------|
//	  |   0   |   1   |   2   |  ...  |  n-2  |  n-1  |
//	  |-------|-------|-------|-------|-------|-------|
//	      ^
//	  center of cell 0 at xMin + dx/2
//
// # Example
//
//	g, err := grid.New(64, 0, 2*math.Pi)
//	if err != nil {
//	    return err
//	}
//	rho := grid.NewField(g, 0)
//	v := rho.Interpolate(1.3)
//
// # Index Checking
//
// Cell indices passed to CellCenter, CellLeft, CellRight and the Field
// accessors are always checked. An out-of-range index is a programming
// error and panics; it is never reported as an error value. The only
// error returned by this package is [ErrInvalidArgument] from [New].
//
// # Thread Safety
//
// A Grid has no mutators and may be shared by any number of goroutines.
// Field has no internal locking; callers serialize writes.
package grid
