package models

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the referenced product, cart item or order does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected input value (bad quantity, empty cart, etc.).
// It maps to HTTP 400 at the handler layer.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError wraps a failure from a collaborator (database, message broker).
// It maps to HTTP 500 at the handler layer.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err with the failing operation name.
func NewUpstreamError(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}
