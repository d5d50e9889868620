// Package apperror defines the error taxonomy shared by the services and
// mapped to HTTP statuses at the handler boundary.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an application error.
type Kind int

const (
	// Internal is an unexpected server-side failure (store error, panic).
	Internal Kind = iota
	// Validation is malformed or missing input.
	Validation
	// Conflict is a duplicate username or email.
	Conflict
	// BadCredential is a wrong password or an invalid/expired token.
	BadCredential
	// NotFound is a missing user or shelf entry.
	NotFound
	// Upstream is a catalog service failure.
	Upstream
)

// Error carries a kind, a client-safe message and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case BadCredential:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewValidation creates a Validation error.
func NewValidation(message string) *Error { return newError(Validation, message, nil) }

// NewConflict creates a Conflict error.
func NewConflict(message string) *Error { return newError(Conflict, message, nil) }

// NewBadCredential creates a BadCredential error.
func NewBadCredential(message string) *Error { return newError(BadCredential, message, nil) }

// NewNotFound creates a NotFound error.
func NewNotFound(message string) *Error { return newError(NotFound, message, nil) }

// NewUpstream creates an Upstream error wrapping the remote failure.
func NewUpstream(message string, err error) *Error { return newError(Upstream, message, err) }

// NewInternal creates an Internal error wrapping the underlying cause.
func NewInternal(message string, err error) *Error { return newError(Internal, message, err) }

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
