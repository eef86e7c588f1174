package board

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets an employee that has
// never been provisioned.
var ErrNotFound = errors.New("employee record not found")

// ErrWriteConflict is returned when an optimistic record write raced a
// concurrent mutation. The caller may retry the whole operation; the
// engine never retries silently.
var ErrWriteConflict = errors.New("record write conflict")

// ErrStoreUnavailable wraps failures of the durable mirror. Mutations
// fail fast with this kind; the live feed keeps serving the last known
// snapshot marked stale.
var ErrStoreUnavailable = errors.New("backing store unavailable")

// ValidationError represents user-facing validation issues such as an
// unknown employee or malformed input. Never retried automatically.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string {
	return e.msg
}

// NewValidationError creates a new validation error.
func NewValidationError(format string, args ...interface{}) error {
	return ValidationError{msg: fmt.Sprintf(format, args...)}
}
