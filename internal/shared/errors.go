package shared

import (
	"errors"
	"fmt"
)

// Stable machine-readable error codes returned in the response envelope.
// Callers branch on these, never on message text.
const (
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeForbidden         = "FORBIDDEN"
	CodeOnboardingPending = "ONBOARDING_PENDING"
	CodeInactivePrincipal = "INACTIVE_PRINCIPAL"
	CodeEmailMismatch     = "EMAIL_MISMATCH"
	CodeSlugUnavailable   = "SLUG_UNAVAILABLE"
	CodeInviteNotFound    = "INVITATION_NOT_FOUND"
	CodeInviteAlreadyUsed = "INVITATION_ALREADY_USED"
	CodeInviteExpired     = "INVITATION_EXPIRED"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	CodeStoreFailure      = "STORE_FAILURE"
	CodeUnexpected        = "UNEXPECTED_FAILURE"
)

// APIError carries a stable code plus a human-readable message and optional
// diagnostic details. It wraps the underlying cause when one exists.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
	cause   error
}

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// NewAPIError builds an error with the given code and message.
func NewAPIError(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// WithDetails attaches diagnostic details and returns the error.
func (e *APIError) WithDetails(details map[string]any) *APIError {
	e.Details = details
	return e
}

// ErrValidation builds a VALIDATION_FAILED error.
func ErrValidation(message string) *APIError {
	return NewAPIError(CodeValidationFailed, message)
}

// ErrStore wraps a store error, tagging the step that failed.
func ErrStore(step string, cause error) *APIError {
	return &APIError{
		Code:    CodeStoreFailure,
		Message: "store operation failed",
		Details: map[string]any{"step": step},
		cause:   cause,
	}
}

// AsAPIError extracts an *APIError from err's chain, or nil.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
