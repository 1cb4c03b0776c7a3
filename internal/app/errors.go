package app

import (
	"errors"
	"net/http"
)

// HTTPError is an error with a status code and a user-facing message.
type HTTPError struct {
	// Err is the underlying cause. It is logged, never shown.
	Err     error
	Message string
	Code    int
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// WithCause attaches the underlying error.
func (e *HTTPError) WithCause(err error) *HTTPError {
	e.Err = err
	return e
}

// StatusText returns the standard text for the status code.
func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// AsHTTPError extracts an HTTPError from err.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// DefaultErrorHandler writes the HTTPError message with its status code.
// Any other error becomes a 500 and is logged.
func DefaultErrorHandler(c Context, err error) error {
	if he, ok := AsHTTPError(err); ok {
		if he.Code >= http.StatusInternalServerError {
			c.LogError("request failed", "error", err, "status", he.Code)
		}
		return c.String(he.Code, he.Message)
	}

	c.LogError("request failed", "error", err)
	return c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
