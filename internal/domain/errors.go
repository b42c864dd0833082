package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound means the domain has no stored rating. It is distinct from
// ErrRemoteUnavailable: the store answered, there is just nothing there.
var ErrNotFound = errors.New("domain not found")

// ErrDuplicateVote means the same voter already rated this domain. The
// existing aggregate is left untouched.
var ErrDuplicateVote = errors.New("vote already recorded for this domain")

// ErrRemoteUnavailable means the live rating backend could not be reached
// or answered with a non-success status. Callers recover by falling through
// to cached or static data.
var ErrRemoteUnavailable = errors.New("rating backend unavailable")

// ValidationError reports malformed caller input (bad domain syntax,
// out-of-range rating). It is never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
