package services

import (
	"fmt"
	"strings"
)

// ValidationError indicates malformed or missing input. It never reaches the
// backend and is always safe to surface to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ResourceNotFoundError indicates the backend confirmed a resource is absent.
type ResourceNotFoundError struct {
	ResourceType string
	Identifier   string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.ResourceType, e.Identifier)
}

// AlreadyClaimedError indicates the user already claimed their daily reward
// today (backend 409). Surfaced distinctly so the caller can render a
// cooldown-specific message.
type AlreadyClaimedError struct {
	GuildID string
	UserID  string
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("daily reward already claimed for user %s in guild %s", e.UserID, e.GuildID)
}

// InsufficientBalanceError indicates the giver cannot cover a transfer. It
// always carries exact numbers for display. Raised both from the local
// pre-check and from backend-confirmed insufficient funds.
type InsufficientBalanceError struct {
	Required  int64
	Available int64
	Operation string
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for %s: required %d, available %d", e.Operation, e.Required, e.Available)
}

// APIError carries a structured backend rejection: the HTTP status and the
// backend's own message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// ServiceError is the catch-all for unexpected backend or transport failures.
// Message is sanitized before construction; the original error is kept for
// server-side logging only and unwraps for errors.Is/As.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// newServiceError wraps an unexpected error with a sanitized message.
func newServiceError(operation string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   sanitizeErrorMessage(err),
		Err:       err,
	}
}

// sensitivePatterns are substrings that mark an error message as leaking
// infrastructure details (credentials, connection strings, hostnames).
var sensitivePatterns = []string{
	"password", "token", "secret", "key", "connection",
	"postgresql://", "mysql://", "mongodb://", "redis://",
	"localhost", "127.0.0.1", "::1", "host:", "port:",
	"user:", "auth", "credential",
}

// sanitizeErrorMessage returns a message safe for user consumption. Anything
// matching a sensitive pattern is replaced wholesale with a generic phrase.
func sanitizeErrorMessage(err error) string {
	if err == nil {
		return "Internal service error"
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range sensitivePatterns {
		if strings.Contains(errStr, pattern) {
			return "Service temporarily unavailable"
		}
	}

	return "Internal service error"
}
