package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure a caller is allowed to see wraps exactly one of
// these; the HTTP layer maps them onto status codes.
var (
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad_request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not_found")
	ErrForbidden    = errors.New("forbidden")
)

// Internal sentinels returned by the components and translated by the
// orchestrator into caller-facing errors.
var (
	ErrInvalidToken   = errors.New("invalid_token")
	ErrInvalidSession = errors.New("invalid_session")
)

// Error carries a kind and the exact message shown to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
