// Package errs provides the error types returned to API clients.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Response is the form used for API responses from failures in the API.
type Response struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Trusted is used to pass an error during the request through the
// application with web specific context. Its message is safe to show to
// the client.
type Trusted struct {
	Err    error
	Status int
}

// NewTrusted wraps a provided error with an HTTP status code. This
// function should be used when handlers encounter expected errors.
func NewTrusted(err error, status int) error {
	return &Trusted{Err: err, Status: status}
}

// NewTrustedf formats a message and wraps it with an HTTP status code.
func NewTrustedf(status int, format string, args ...any) error {
	return &Trusted{Err: fmt.Errorf(format, args...), Status: status}
}

// Error implements the error interface. It uses the default message of the
// wrapped error. This is what will be shown in the services' logs.
func (t *Trusted) Error() string {
	return t.Err.Error()
}

// Unwrap provides access to the wrapped error.
func (t *Trusted) Unwrap() error {
	return t.Err
}

// GetTrusted returns the trusted error in the chain, if any.
func GetTrusted(err error) (*Trusted, bool) {
	var t *Trusted
	if !errors.As(err, &t) {
		return nil, false
	}
	return t, true
}

// Status returns the status code carried by the error, defaulting to 500.
func Status(err error) int {
	if t, ok := GetTrusted(err); ok {
		return t.Status
	}
	return http.StatusInternalServerError
}
