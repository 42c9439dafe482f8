package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"new", New(ErrCodeInvalidVersion, "api version %q", "latest"), `INVALID_VERSION: api version "latest"`},
		{"wrap", Wrap(ErrCodeNetwork, errors.New("connection refused"), "POST %s", "/operation/variant/aggregate"), "NETWORK_ERROR: POST /operation/variant/aggregate: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeTimeout, context.DeadlineExceeded, "DELETE /operation/variant/score/delete")

	if errors.Unwrap(err) != context.DeadlineExceeded {
		t.Errorf("Unwrap() = %v", errors.Unwrap(err))
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is should see the cause")
	}

	// Context wrapping with %w keeps the code reachable.
	outer := fmt.Errorf("submit job: %w", err)
	if !Is(outer, ErrCodeTimeout) || GetCode(outer) != ErrCodeTimeout {
		t.Errorf("code lost through fmt.Errorf: %v", outer)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeNotFound, "x"), ErrCodeNotFound, true},
		{"other code", New(ErrCodeNotFound, "x"), ErrCodeForbidden, false},
		{"outermost code wins", Wrap(ErrCodeServer, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeServer, true},
		{"inner code hidden", Wrap(ErrCodeServer, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidInput, false},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidProfile, "x")); got != ErrCodeInvalidProfile {
		t.Errorf("GetCode() = %q", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"message only", New(ErrCodeInvalidConfig, "no server host configured"), "no server host configured"},
		{"with cause", Wrap(ErrCodeNetwork, errors.New("connection refused"), "POST /operation/variant/aggregate"), "POST /operation/variant/aggregate: connection refused"},
		{"behind fmt.Errorf", fmt.Errorf("ctx: %w", New(ErrCodeForbidden, "permission denied")), "permission denied"},
		{"plain", errors.New("plain error"), "plain error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimitedError(t *testing.T) {
	tests := []struct {
		err  *RateLimitedError
		want string
	}{
		{&RateLimitedError{RetryAfter: 60}, "rate limited: retry after 60 seconds"},
		{&RateLimitedError{}, "rate limited"},
		{&RateLimitedError{RetryAfter: 5, Message: "HTTP 429"}, "rate limited: retry after 5 seconds (HTTP 429)"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if tt.err.Code() != ErrCodeRateLimited {
			t.Errorf("Code() = %v", tt.err.Code())
		}
	}
}

func TestRetryAfter(t *testing.T) {
	err := Wrap(ErrCodeRateLimited, &RateLimitedError{RetryAfter: 7}, "POST /x")
	if secs, ok := RetryAfter(err); !ok || secs != 7 {
		t.Errorf("RetryAfter() = %d, %v; want 7, true", secs, ok)
	}
	if _, ok := RetryAfter(New(ErrCodeServer, "x")); ok {
		t.Error("RetryAfter() should report false without a RateLimitedError")
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidURL,
		ErrCodeInvalidVersion,
		ErrCodeInvalidProfile,
		ErrCodeInvalidConfig,
		ErrCodeUnknownRoute,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeSessionNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeRateLimited,
		ErrCodeBadRequest,
		ErrCodeServer,
		ErrCodeRequestFailed,
		ErrCodeUnauthorized,
		ErrCodeForbidden,
		ErrCodeSessionExpired,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
