package blogcrm

import (
	"errors"

	"github.com/eringen/blogcrm/store"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = store.ErrNotFound

// ErrInvalidCredentials is returned by an Authenticator on a failed login.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError reports input rejected before any store call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
