package errors

import (
	"errors"
	"fmt"
)

// Re-export the standard library helpers so callers need a single import.
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// AppError carries an error code alongside the message. The code is the
// dispatch mechanism; the message is detail for humans.
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewAppError creates an error with an explicit code.
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// Domain error constructors. These are the four recoverable kinds the
// services raise; anything else is ErrInternal.

// NewValidation reports invalid caller input (blank or too-long fields,
// negative minutes, and so on).
func NewValidation(message string) *AppError {
	return NewAppError(ErrInvalidArgument, message, nil)
}

// NewNotFound reports a missing task, file, proof shot, user or notification.
func NewNotFound(message string) *AppError {
	return NewAppError(ErrNotFound, message, nil)
}

// NewAccessDenied reports an ownership or mentor-relation mismatch.
func NewAccessDenied(message string) *AppError {
	return NewAppError(ErrUnauthorized, message, nil)
}

// NewIllegalState reports an operation applied to a task in the wrong state,
// such as completing a future task or resubmitting a feedback-locked task.
func NewIllegalState(message string) *AppError {
	return NewAppError(ErrConflict, message, nil)
}

// Wrap wraps err with message, keeping the code when err is an AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return NewAppError(appErr.Code(), message, err)
	}

	return NewAppError(ErrInternal, message, err)
}

// CodeOf returns the code of err, or ErrInternal for plain errors.
func CodeOf(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}
