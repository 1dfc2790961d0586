// Package apperr defines the error kinds surfaced by the job board and
// their HTTP status codes.
package apperr

import (
	"errors"
	"net/http"
)

// Kinds. Match with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrInternal        = errors.New("internal")
)

// Error pairs a kind with a client-facing message and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New returns an error of the given kind.
func New(kind error, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap returns an error of the given kind carrying cause.
func Wrap(kind error, msg string, cause error) error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// Internal wraps an unexpected failure. The cause is never shown to clients.
func Internal(msg string, cause error) error {
	return Wrap(ErrInternal, msg, cause)
}

var kinds = []struct {
	kind   error
	status int
	name   string
}{
	{ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
	{ErrForbidden, http.StatusForbidden, "forbidden"},
	{ErrConflict, http.StatusBadRequest, "conflict"},
	{ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{ErrNotFound, http.StatusNotFound, "not_found"},
	{ErrInternal, http.StatusInternalServerError, "internal"},
}

// Status maps err to an HTTP status code. Unclassified errors are 500.
func Status(err error) int {
	for _, k := range kinds {
		if errors.Is(err, k.kind) {
			return k.status
		}
	}
	return http.StatusInternalServerError
}

// Code returns the stable machine-readable name of err's kind.
func Code(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.kind) {
			return k.name
		}
	}
	return "internal"
}

// Message returns the message safe to show a client.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && !errors.Is(e.Kind, ErrInternal) {
		return e.Message
	}
	return "internal server error"
}
