package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that an operation is blocked by referencing records,
// e.g. deleting an account that still has journal items posted against it.
var ErrConflict = errors.New("operation conflicts with existing records")

// ErrForbidden indicates that the caller is not allowed to perform the operation,
// e.g. mutating a journal entry produced by an automated source.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal indicates an unexpected internal failure, including data-integrity
// problems such as an account whose group can no longer be resolved.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an HTTP-ish status code and message.
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
