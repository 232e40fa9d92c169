package apierr

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/yungbote/writemate-backend/internal/pkg/errors"
)

// Error carries the HTTP status and machine-readable code a handler should respond with.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// From classifies err by the sentinel it wraps. fallbackCode is used for unclassified failures.
func From(err error, fallbackCode string) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, apperrors.ErrUpstream):
		return New(http.StatusBadGateway, "upstream_failure", err)
	default:
		return New(http.StatusInternalServerError, fallbackCode, err)
	}
}
