package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested investor or pitch does not exist.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when a recall backend fails in a way the
	// lexical fallback cannot absorb.
	ErrExternalService = errors.New("external service error")
)

// ValidationError names the request field that failed validation.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// ExternalError marks err as a failure of the named backend. The result
// matches both ErrExternalService and err.
func ExternalError(backend string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", backend, ErrExternalService, err)
}
