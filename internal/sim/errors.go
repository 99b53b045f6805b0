package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrBadTimestep indicates a non-positive dt.
	ErrBadTimestep = errors.New("sim: timestep must be positive")

	// ErrBadDuration indicates a non-positive duration.
	ErrBadDuration = errors.New("sim: duration must be positive")

	// ErrInvalidSample indicates a NaN or Inf sample from the plant or
	// controller.
	ErrInvalidSample = errors.New("sim: invalid sample (NaN or Inf)")
)

// StepError wraps an error with the step it occurred at.
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
