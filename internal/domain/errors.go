package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports an unknown task or automation id.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange reports a run attempted outside the automation's
	// start/end date bounds, or against a soft-deleted automation.
	ErrOutOfRange = errors.New("out of range")
)

// InvalidTransitionError reports a status change with no matching row in the
// transition table. It names the attempted pair so callers can render an
// actionable message.
type InvalidTransitionError struct {
	From TaskStatus
	To   TaskStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// ValidationError reports a missing or malformed field on a request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}
