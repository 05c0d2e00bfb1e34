package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates run parameters that cannot be stepped.
	ErrInvalidConfig = errors.New("sim: invalid run configuration")

	// ErrCanceled indicates the run was interrupted by its context.
	ErrCanceled = errors.New("sim: run canceled")

	// ErrInvalidState indicates a non-finite value in the deposited density.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")
)

// StepError wraps an error with the step at which it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
