package service

import (
	"fmt"
	"strings"
)

// ValidationError carries every rule the input violated so the caller can
// present the complete list, not just the first failure.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// NewValidationError creates a validation error from the collected messages
func NewValidationError(errs []string) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ConflictError is a business-rule violation detected against persisted
// state (duplicate code, double assignment). The message names the
// offending row and is safe to surface verbatim.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError creates a conflict error with a formatted message
func NewConflictError(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}
