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

// ErrForbidden indicates that the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that the resource is in a state that does not permit the operation.
var ErrConflict = errors.New("resource state conflict")

// ErrAlreadyOpen indicates that an open cash period already exists for the owner.
var ErrAlreadyOpen = errors.New("cash period already open for owner")

// ErrNotOpen indicates that the cash period is not in the open state.
var ErrNotOpen = errors.New("cash period is not open")

// ErrConcurrentMatch indicates that a conditional confirm/consume update lost
// the race against a concurrent matching pass.
var ErrConcurrentMatch = errors.New("concurrent match conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying cause with a status code and message.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
