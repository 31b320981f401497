// Package apperrors defines the service error taxonomy. Handlers map these
// to HTTP status codes; nothing here is ever fatal to the process.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a missing resource.
var ErrNotFound = errors.New("not found")

// ValidationError indicates a rejected request. No partial state change
// occurs when one is returned.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ExternalServiceError indicates a failed call to an external collaborator
// (payment gateway, rate provider, email sender). The core does not retry;
// callers surface it upward.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// NewExternalServiceError wraps an upstream failure with the service name.
func NewExternalServiceError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
