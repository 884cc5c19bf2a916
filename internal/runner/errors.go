package runner

import (
	"errors"
	"fmt"
)

// Failure kinds. Every step or setup failure carries exactly one of
// these; errors.Is picks the kind out of any wrapped chain.
var (
	// ErrNavigation marks an unreachable target URL or a failed
	// initial load.
	ErrNavigation = errors.New("navigation failed")

	// ErrElementNotFound marks a referenced control or text that never
	// appeared on the page.
	ErrElementNotFound = errors.New("element not found")

	// ErrPermissionSetup marks a capability grant or geolocation
	// override rejected while configuring the session.
	ErrPermissionSetup = errors.New("permission setup failed")

	// ErrTimeout marks a wait condition unsatisfied at its deadline.
	ErrTimeout = errors.New("wait timed out")
)

// StepError records which step failed. errors.As recovers the step
// context; errors.Is still matches the underlying kind.
type StepError struct {
	Index int    // zero-based position in the scenario's step list
	Step  string // human description of the step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// kindError tags an underlying cause with a failure kind without
// flattening the cause chain.
type kindError struct {
	kind error
	err  error
}

func classify(kind, err error) error {
	return &kindError{kind: kind, err: err}
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%v: %v", e.kind, e.err)
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

func (e *kindError) Unwrap() error {
	return e.err
}
