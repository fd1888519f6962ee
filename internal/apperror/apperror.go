package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Controllers translate them to HTTP
// status codes with errors.Is.
var (
	// ErrNotFound marks a survey, question or participation that is absent
	// or soft-deleted.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden marks a capability check failure.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrNoChange marks a resubmission whose answers are materially
	// identical to the stored ones. It is a "nothing to do" signal, not a
	// validation failure.
	ErrNoChange = errors.New("no material change in submitted answers")

	// ErrUnauthorized marks missing or invalid credentials.
	ErrUnauthorized = errors.New("invalid credentials")
)

// ValidationError reports a rejected payload with a field-level reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
