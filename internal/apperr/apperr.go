// Package apperr defines the error taxonomy shared by services, actions,
// and handlers. Store-level errors are mapped to one of these kinds at
// the service boundary; raw driver errors never reach the transport
// layer.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindInternal is the fallback for unexpected failures.
	KindInternal Kind = iota
	// KindValidation marks malformed or missing input.
	KindValidation
	// KindNotFound marks a referenced record that is absent or not owned
	// by the caller.
	KindNotFound
	// KindConflict marks a uniqueness violation or an in-use guard.
	KindConflict
	// KindForbidden marks a cross-owner access attempt.
	KindForbidden
)

// Error is a typed error carrying the taxonomy kind, a human-readable
// message, and optionally the field that failed validation.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a KindValidation error for the given field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NotFound builds a KindNotFound error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict builds a KindConflict error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Forbidden builds a KindForbidden error.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Internal wraps an unexpected error without leaking its detail into the
// user-visible message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf returns the taxonomy kind of err, or KindInternal when err does
// not carry one.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
