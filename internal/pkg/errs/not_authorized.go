package errs

import (
	"fmt"
)

// ErrNotAuthorized is the sentinel error for operations the acting role
// is not permitted to perform. Authorization failures are kept distinct
// from not-found errors so callers can surface them differently.
var ErrNotAuthorized = fmt.Errorf("not authorized")

// NotAuthorizedError reports that an actor's role does not permit an operation.
type NotAuthorizedError struct {
	Operation string
	Role      string
	Cause     error
}

// NewNotAuthorizedError creates a NotAuthorizedError without an underlying cause.
func NewNotAuthorizedError(operation, role string) *NotAuthorizedError {
	return &NotAuthorizedError{
		Operation: operation,
		Role:      role,
	}
}

// NewNotAuthorizedErrorWithCause creates a NotAuthorizedError wrapping an underlying cause.
func NewNotAuthorizedErrorWithCause(operation, role string, cause error) *NotAuthorizedError {
	return &NotAuthorizedError{
		Operation: operation,
		Role:      role,
		Cause:     cause,
	}
}

func (e *NotAuthorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: role %s may not %s (cause: %s)",
			ErrNotAuthorized, e.Role, e.Operation, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: role %s may not %s", ErrNotAuthorized, e.Role, e.Operation)
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}
