// internal/common/errors/errors.go

// Package errors provides standardized error handling for the event pipeline
// and HTTP surface.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeEventPayloadInvalid ErrorCode = "EVENT_PAYLOAD_INVALID"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodePushSendFailed ErrorCode = "PUSH_SEND_FAILED"

	ErrCodeSuggestionAPIFailed ErrorCode = "SUGGESTION_API_FAILED"

	ErrCodePaymentOrderFailed ErrorCode = "PAYMENT_ORDER_FAILED"

	ErrCodeEmailSendFailed ErrorCode = "EMAIL_SEND_FAILED"
)

// StandardError represents a structured application error.
//
// Note: absence of data (missing push token, missing address block, empty
// order history) is NOT an error in this system; those conditions are handled
// by skip-or-default logic at the call site and never produce a StandardError.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying provider or driver error to errors.Is/As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// NewValidationFailedError creates a non-retryable request validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEventPayloadInvalidError creates a non-retryable event payload error.
func NewEventPayloadInvalidError(eventType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEventPayloadInvalid,
		Message:   "Event payload failed schema validation",
		Details:   fmt.Sprintf("eventType: %s, error: %s", eventType, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(query string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("query: %s, error: %s", query, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewPushSendFailedError wraps a push provider failure. The dispatcher logs
// this and swallows it; it is never raised to the event pipeline.
func NewPushSendFailedError(target string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePushSendFailed,
		Message:   "Push notification delivery failed",
		Details:   fmt.Sprintf("target: %s, error: %s", target, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSuggestionAPIFailedError wraps a completion API failure. Callers convert
// this into a fallback payload, never a hard error for the client.
func NewSuggestionAPIFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSuggestionAPIFailed,
		Message:   "Completion API error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewPaymentOrderFailedError wraps a payment provider failure.
func NewPaymentOrderFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePaymentOrderFailed,
		Message:   "Payment order creation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewEmailSendFailedError wraps an email provider failure. Unlike push, this
// is surfaced to the caller: the client must know verification failed.
func NewEmailSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailSendFailed,
		Message:   "Verification email delivery failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}
