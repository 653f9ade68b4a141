// Package apperr defines the error kinds returned by the service layer.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindLimitExceeded Kind = "limit_exceeded"
	KindBadRequest    Kind = "bad_request"
	KindUnauthorized  Kind = "unauthorized"
	KindInternal      Kind = "internal_error"
)

// Error is a client-facing failure. Msg is returned to the caller verbatim;
// Err keeps the underlying cause for logs.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error      { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) *Error      { return &Error{Kind: KindConflict, Msg: msg} }
func LimitExceeded(msg string) *Error { return &Error{Kind: KindLimitExceeded, Msg: msg} }
func BadRequest(msg string) *Error    { return &Error{Kind: KindBadRequest, Msg: msg} }
func Unauthorized(msg string) *Error  { return &Error{Kind: KindUnauthorized, Msg: msg} }

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindLimitExceeded, KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// As extracts an *Error from err. Anything else is reported as an internal
// error with a generic message.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal error", err)
}

func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
