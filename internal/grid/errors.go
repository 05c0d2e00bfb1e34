package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument indicates grid parameters that cannot describe a
// non-empty uniform mesh.
var ErrInvalidArgument = errors.New("grid: invalid argument")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func outOfRange(what string, i, n int) string {
	return fmt.Sprintf("grid: %s index %d out of range [0, %d)", what, i, n)
}
