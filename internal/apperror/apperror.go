// Package apperror defines the error taxonomy shared by the application
// services and translated once at the HTTP boundary.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for boundary translation.
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindNotFound      Kind = "NOT_FOUND"
	KindForbidden     Kind = "FORBIDDEN"
	KindStateConflict Kind = "STATE_CONFLICT"
	KindInternal      Kind = "INTERNAL"
)

// Error carries a kind, a user-safe message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from an error chain. Unclassified errors are
// internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Message returns the user-safe message for an error chain. Internal causes
// are never surfaced.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal error"
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindStateConflict, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an infrastructure failure with a user-safe message.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}
