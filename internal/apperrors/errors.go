package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that
// already exists, such as an account code or entry number collision. It is the
// uniqueness flavour of a conflict and maps to 409.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation lost a race with concurrent writers
// and did not recover within its retry bound. The contention flavour of a
// conflict, it also maps to 409.
var ErrConflict = errors.New("resource conflict")

// ErrInvalidState indicates an illegal status transition, such as posting an
// already-posted journal entry or deleting a posted one.
var ErrInvalidState = errors.New("invalid state transition")

// ErrUnbalanced indicates that a journal entry's debit and credit totals do not match.
var ErrUnbalanced = errors.New("journal entry is not balanced")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with an HTTP-ish status code and a message
// suitable for logging. Repositories use it for infrastructure failures.
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

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
