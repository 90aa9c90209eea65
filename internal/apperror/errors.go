// Package apperror defines the error kinds shared by the HTTP surface and the
// interview session controller.
package apperror

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is wrapped by every ParseError.
var ErrMalformedResponse = errors.New("malformed response")

// ValidationError reports missing or invalid caller input. No external call
// has been attempted when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError reports a failed call to an external collaborator (AI model,
// transport, storage).
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Upstream wraps err as an UpstreamError for operation op.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Op: op, Err: err}
}

// ParseError reports a response that could not be decoded into the expected
// schema, or that lacked required fields.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}
	return "malformed response: " + e.Reason
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedResponse, e.Err}
	}
	return []error{ErrMalformedResponse}
}

// Malformed builds a ParseError.
func Malformed(reason string, err error) error {
	return &ParseError{Reason: reason, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
