package httpapi

import (
	"errors"
	"net/http"
)

// Kind classifies request failures
type Kind string

const (
	ValidationError     Kind = "ValidationError"
	NotFoundError       Kind = "NotFoundError"
	MalformedInputError Kind = "MalformedInputError"
	InternalError       Kind = "InternalError"
)

const internalMessage = "Internal server error"

// Error is a failure that is reported to the client as {"error": Message}
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

// Status maps the error kind to an HTTP status code
func (e *Error) Status() int {
	switch e.Kind {
	case ValidationError, MalformedInputError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Kind: ValidationError, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: NotFoundError, Message: message}
}

func Malformed(message string) *Error {
	return &Error{Kind: MalformedInputError, Message: message}
}

// Internal wraps a store or encoding failure. Its cause is logged, never
// sent to the client.
func Internal(err error) *Error {
	return &Error{Kind: InternalError, Message: internalMessage, Err: err}
}

// AsError converts any error into an *Error, treating unknown errors as
// internal failures.
func AsError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err)
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
