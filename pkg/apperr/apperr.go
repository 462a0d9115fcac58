package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error into one of the response categories
// every handler and guard failure must resolve to.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
	KindInternal
)

// Error is the single error type crossing the application boundary.
// Details carries caller-facing structure (field violations, resource name);
// cause is kept for logs only and never leaks into responses.
type Error struct {
	kind    Kind
	message string
	Details any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Kind() Kind { return e.kind }

// Message returns the caller-facing message. Internal errors are collapsed
// to a generic message so no internal detail leaks.
func (e *Error) Message() string {
	if e.kind == KindInternal {
		return "internal server error"
	}
	return e.message
}

func (e *Error) HTTPStatus() int {
	switch e.kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string, details any) *Error {
	return &Error{kind: KindValidation, message: message, Details: details}
}

func NotFound(resource, id string) *Error {
	return &Error{
		kind:    KindNotFound,
		message: fmt.Sprintf("%s with id %s not found", resource, id),
		Details: map[string]string{"resource": resource, "id": id},
	}
}

// Unauthorized collapses every credential failure cause into one message so
// responses do not reveal why verification failed.
func Unauthorized() *Error {
	return &Error{kind: KindUnauthorized, message: "unauthorized"}
}

func Forbidden(message string) *Error {
	return &Error{kind: KindForbidden, message: message}
}

func Conflict(message string) *Error {
	return &Error{kind: KindConflict, message: message}
}

func Internal(cause error) *Error {
	return &Error{kind: KindInternal, message: "internal server error", cause: cause}
}

// From normalizes an arbitrary error to *Error. Unclassified errors are
// treated as internal, never re-surfaced verbatim.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}
