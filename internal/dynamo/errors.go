package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector holding NaN or Inf values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")

	// ErrStepLimit indicates the run used up its step budget before the end time.
	ErrStepLimit = errors.New("dynamo: step budget exhausted before end time")

	// ErrDimensionMismatch indicates mismatched state dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	ErrUnknownModel      = errors.New("dynamo: unknown model")
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   TimeVector
	Wrapped error
}

func (e *SimulationError) Error() string {
	return SimError{Time: e.Time, Step: e.Step, Message: e.Wrapped.Error()}.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
