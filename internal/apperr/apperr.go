// Package apperr defines the application's error taxonomy: a flat set of
// error codes and a single error struct carrying the code, a user-safe
// message, and optional technical detail. Callers dispatch on the code, not
// on a type hierarchy.
package apperr

import (
	"errors"
	"fmt"
	"time"
)

// Code identifies a failure category.
type Code string

const (
	CodeStorageUnavailable       Code = "STORAGE_UNAVAILABLE"
	CodeStorageQuotaExceeded     Code = "STORAGE_QUOTA_EXCEEDED"
	CodeStorageTransactionFailed Code = "STORAGE_TRANSACTION_FAILED"
	CodeStorageOperationFailed   Code = "STORAGE_OPERATION_FAILED"
	CodeRenderError              Code = "RENDER_ERROR"
	CodeValidation               Code = "VALIDATION_ERROR"
	CodeUnknown                  Code = "UNKNOWN_ERROR"
)

// DefaultUserMessage is the user-safe message attached to failures that
// could not be classified.
const DefaultUserMessage = "An unexpected error occurred. Please try again."

// Context carries structured diagnostic fields alongside an error.
type Context map[string]any

// Error is the one error type the rest of the system surfaces. UserMessage
// is safe to display; TechnicalDetails is raw detail for diagnostics only.
type Error struct {
	Code             Code
	UserMessage      string
	TechnicalDetails string
	Timestamp        time.Time
	Context          Context
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.UserMessage)
}

// New builds a taxonomy error with the current timestamp.
func New(code Code, userMessage string) *Error {
	return &Error{
		Code:        code,
		UserMessage: userMessage,
		Timestamp:   time.Now(),
	}
}

// Newf builds a taxonomy error with a formatted user message.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// WithDetails attaches technical detail and returns the error.
func (e *Error) WithDetails(details string) *Error {
	e.TechnicalDetails = details
	return e
}

// WithContext attaches structured context and returns the error.
func (e *Error) WithContext(ctx Context) *Error {
	e.Context = ctx
	return e
}

// Wrap normalizes an arbitrary error into the taxonomy. Errors that already
// carry a code pass through unchanged; anything else becomes UNKNOWN_ERROR
// with a generic user-safe message and the raw message preserved as
// technical detail. Wrap(nil) returns nil.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(CodeUnknown, DefaultUserMessage).WithDetails(err.Error())
}

// FromRecovered normalizes a recovered panic value, which need not be an
// error at all, into a taxonomy error.
func FromRecovered(v any) *Error {
	if err, ok := v.(error); ok {
		return Wrap(err)
	}
	return New(CodeUnknown, DefaultUserMessage).WithDetails(fmt.Sprint(v))
}

// As extracts a taxonomy error from an error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// CodeOf returns the taxonomy code of err, or CodeUnknown for anything
// outside the taxonomy.
func CodeOf(err error) Code {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeUnknown
}
