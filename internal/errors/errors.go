// Package errors classifies application errors for logging and user replies.
package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError carries an error classification alongside the user-facing reply.
type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// NewInvalidAmountError marks message text that does not parse as a sats amount.
func NewInvalidAmountError(input string) *AppError {
	return &AppError{
		Code:        "E100",
		Message:     fmt.Sprintf("invalid sats amount: %q", input),
		UserMessage: "❌ Please send a valid number representing sats!",
		Severity:    SeverityLow,
	}
}

// NewInvalidCurrencyError marks a currency code that is not exactly 3 letters.
func NewInvalidCurrencyError(input string) *AppError {
	return &AppError{
		Code:        "E110",
		Message:     fmt.Sprintf("invalid currency code: %q", input),
		UserMessage: "❌​ Invalid currency code. Use a 3-letter code like USD or EUR.",
		Severity:    SeverityLow,
	}
}

// NewPersistenceError marks a failed preference store write.
func NewPersistenceError(cause error) *AppError {
	var underlying string
	if cause != nil {
		underlying = cause.Error()
	}

	return &AppError{
		Code:        "E300",
		Message:     fmt.Sprintf("preference store write failed: %s", underlying),
		UserMessage: "Your preference could not be saved. Please try again later.",
		Severity:    SeverityHigh,
		cause:       cause,
	}
}

// NewStateError marks a failed chat mode read or transition.
func NewStateError(cause error) *AppError {
	var underlying string
	if cause != nil {
		underlying = cause.Error()
	}

	return &AppError{
		Code:        "E400",
		Message:     fmt.Sprintf("chat mode operation failed: %s", underlying),
		UserMessage: "An internal error occurred. Please try again later.",
		Severity:    SeverityMedium,
		cause:       cause,
	}
}
