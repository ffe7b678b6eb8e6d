package services

import "fmt"

// ValidationError reports missing or malformed caller input. Not retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// PreconditionError reports a failed state-machine guard. Submitted and
// Required carry review progress so callers can display it.
type PreconditionError struct {
	Message   string
	Submitted int
	Required  int
}

func (e *PreconditionError) Error() string { return e.Message }

func newReviewProgressError(submitted, required int) *PreconditionError {
	return &PreconditionError{
		Message:   fmt.Sprintf("%d/%d reviews submitted", submitted, required),
		Submitted: submitted,
		Required:  required,
	}
}

// NotFoundError reports an absent paper, reviewer, or assignment.
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// ConflictError reports a mutation rejected because of the entity's current
// state, e.g. any write against a paper in a terminal status.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func newConflictError(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ExternalDependencyError classifies a failed side-effecting call (email
// dispatch). It is logged and never rolls back the state transition that
// triggered it.
type ExternalDependencyError struct {
	Op  string
	Err error
}

func (e *ExternalDependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalDependencyError) Unwrap() error { return e.Err }
