// Package errors provides structured error types for the OpenCGA client.
//
// Every failure surfaced by the REST layer, configuration loading or the
// session store carries a machine-readable [Code] so that callers can react
// to a class of failure without matching on message text:
//
//	resp, err := ops.DeleteVariantScore(ctx, opts)
//	if errors.Is(err, errors.ErrCodeUnauthorized) {
//	    // token missing or expired
//	}
//
// Codes follow a coarse naming convention:
//   - INVALID_*: input rejected before any request was sent
//   - NOT_FOUND, *_NOT_FOUND: resource or local file missing
//   - NETWORK_ERROR, TIMEOUT, RATE_LIMITED: transport level failures
//   - BAD_REQUEST, UNAUTHORIZED, FORBIDDEN, SERVER_ERROR, REQUEST_FAILED: HTTP status classes
//   - INTERNAL_ERROR, UNSUPPORTED: unexpected conditions
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidURL     Code = "INVALID_URL"
	ErrCodeInvalidVersion Code = "INVALID_VERSION"
	ErrCodeInvalidProfile Code = "INVALID_PROFILE"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeUnknownRoute   Code = "UNKNOWN_ROUTE"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// HTTP status errors
	ErrCodeBadRequest    Code = "BAD_REQUEST"
	ErrCodeServer        Code = "SERVER_ERROR"
	ErrCodeRequestFailed Code = "REQUEST_FAILED"

	// Authentication errors
	ErrCodeUnauthorized   Code = "UNAUTHORIZED"
	ErrCodeForbidden      Code = "FORBIDDEN"
	ErrCodeSessionExpired Code = "SESSION_EXPIRED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// Only the outermost *Error in the chain is inspected.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message followed by the cause, without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// RateLimitedError provides additional information for 429 responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying, 0 when the server did not say
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	msg := "rate limited"
	if e.RetryAfter > 0 {
		msg = fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	if e.Message != "" {
		msg += " (" + e.Message + ")"
	}
	return msg
}

// RetryAfter returns the server's Retry-After hint in seconds when err is,
// or wraps, a *RateLimitedError.
func RetryAfter(err error) (int, bool) {
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl.RetryAfter, true
	}
	return 0, false
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
