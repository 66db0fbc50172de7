package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode is a machine-readable classification of a domain error.
type ErrorCode string

const (
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeInvalidState  ErrorCode = "INVALID_STATE"
	CodeForbidden     ErrorCode = "FORBIDDEN"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeConflict      ErrorCode = "CONFLICT"
	CodeWindowExpired ErrorCode = "WINDOW_EXPIRED"
)

// DomainError is the typed error returned by domain and application operations.
// The calling layer maps Code to a transport-level status; Message is stable and
// machine-readable enough to surface directly.
type DomainError struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError creates an error for malformed or out-of-range input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: message}
}

// NewInvalidStateError creates an error for a status transition that is not
// permitted from the current status.
func NewInvalidStateError(from, to string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidState,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

// NewForbiddenError creates an error for a caller lacking role or ownership.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Code: CodeForbidden, Message: message}
}

// NewNotFoundError creates an error for a missing entity.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", entity, id),
	}
}

// NewConflictError creates an error for an optimistic-concurrency write that
// lost the race. Callers may re-fetch and re-evaluate, never blindly retry.
func NewConflictError(message string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: message}
}

// NewWindowExpiredError creates an error for a time-gated action attempted
// after its deadline. The message names the exact deadline that passed.
func NewWindowExpiredError(action string, deadline time.Time) *DomainError {
	return &DomainError{
		Code:    CodeWindowExpired,
		Message: fmt.Sprintf("%s window expired at %s", action, deadline.UTC().Format(time.RFC3339)),
	}
}

// CodeOf extracts the ErrorCode from err, or empty string if err is not a DomainError.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsCode reports whether err is a DomainError with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
