package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories, usecases and adapters.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrNotAuthorized        = errors.New("not authorized")
	ErrNotFound             = errors.New("not found")
	ErrAlreadyDecided       = errors.New("already decided")
	ErrUnattributed         = errors.New("deposit not attributed to a user")
	ErrUserExists           = errors.New("user exists")
)

// ValidationError reports a malformed amount, currency, address or other input.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Invalid is shorthand for constructing a ValidationError.
func Invalid(field, format string, args ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
