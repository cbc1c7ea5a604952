package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure categories the domain layer can report.
var (
	// ErrAuthRequired means the request carries no usable session.
	ErrAuthRequired = errors.New("authentication required")
	// ErrForbidden means the session exists but lacks the needed role.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrNotFound means the referenced entity does not exist or is not visible.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports a rejected input field. It renders as a
// user-facing message rather than an internal failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for the given field.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsAuthRequired(err error) bool {
	return errors.Is(err, ErrAuthRequired)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
