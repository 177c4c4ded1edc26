// Package errors provides custom error types for the pulse catalog system.
// These errors enable programmatic error checking at call sites: a rejected
// create surfaces field-level feedback, a missing record surfaces its id,
// and an identity-gated action surfaces an authentication prompt.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the pulse catalog system
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthRequired indicates an action that needs a resolvable identity
	ErrAuthRequired = errors.New("authentication required")
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure for a single field
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// AuthRequiredError represents an identity-gated action attempted without
// a resolvable identity. It is surfaced as a prompt to authenticate,
// never as a defect.
type AuthRequiredError struct {
	Action string
}

// Error implements the error interface
func (e *AuthRequiredError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("authentication required to %s", e.Action)
	}
	return "authentication required"
}

// Is implements errors.Is support
func (e *AuthRequiredError) Is(target error) bool {
	return target == ErrAuthRequired
}

// NewAuthRequiredError creates a new AuthRequiredError
func NewAuthRequiredError(action string) *AuthRequiredError {
	return &AuthRequiredError{Action: action}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsAuthRequired checks if an error is an authentication error
func IsAuthRequired(err error) bool {
	return errors.Is(err, ErrAuthRequired)
}

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}
