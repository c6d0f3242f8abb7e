package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
// Tenant isolation failures surface as not-found too, never as another
// organization's data.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidState indicates a workflow transition that is not permitted from
// the current state, including lost conditional-update races.
var ErrInvalidState = errors.New("invalid state transition")

// ErrForbidden indicates the actor's role is insufficient for the operation.
var ErrForbidden = errors.New("operation not permitted for role")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// AppError wraps unexpected infrastructure failures with an HTTP-ish code and
// a message. Expected business outcomes use the sentinel errors above instead.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an error that satisfies errors.Is(err, ErrNotFound)
// while carrying a resource-specific message.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%s: %w", message, ErrNotFound)
}
