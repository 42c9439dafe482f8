package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	apierrors "github.com/matzehuels/opencga/pkg/errors"
)

// maxErrorBody caps how much of a response body is quoted in error messages.
const maxErrorBody = 512

// Response is the raw result of a REST call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       json.RawMessage // Undecoded response body
	Duration   time.Duration   // Time from sending the request to reading the body
	RequestID  string          // Value sent as X-Request-Id
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return apierrors.New(apierrors.ErrCodeInvalidInput, "empty response body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return apierrors.Wrap(apierrors.ErrCodeInvalidInput, err, "decode response")
	}
	return nil
}

// StatusError is the cause attached to errors for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(string(e.Body))
	if msg == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
}

// checkStatus maps a non-2xx response to a coded error.
func checkStatus(method, endpoint string, resp *Response) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}

	cause := &StatusError{StatusCode: code, Body: resp.Body}
	switch {
	case code == http.StatusBadRequest:
		return apierrors.Wrap(apierrors.ErrCodeBadRequest, cause, "%s %s", method, endpoint)
	case code == http.StatusUnauthorized:
		return apierrors.Wrap(apierrors.ErrCodeUnauthorized, cause, "%s %s: missing or expired token", method, endpoint)
	case code == http.StatusForbidden:
		return apierrors.Wrap(apierrors.ErrCodeForbidden, cause, "%s %s: permission denied", method, endpoint)
	case code == http.StatusNotFound:
		return apierrors.Wrap(apierrors.ErrCodeNotFound, cause, "%s %s", method, endpoint)
	case code == http.StatusTooManyRequests:
		rl := &apierrors.RateLimitedError{
			RetryAfter: retryAfter(resp.Header.Get("Retry-After")),
			Message:    cause.Error(),
		}
		return apierrors.Wrap(apierrors.ErrCodeRateLimited, rl, "%s %s", method, endpoint)
	case code >= 500:
		return apierrors.Wrap(apierrors.ErrCodeServer, cause, "%s %s", method, endpoint)
	}
	return apierrors.Wrap(apierrors.ErrCodeRequestFailed, cause, "%s %s", method, endpoint)
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP date.
func retryAfter(v string) int {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return int(d.Round(time.Second) / time.Second)
		}
	}
	return 0
}

// transportError maps a failure to reach the server to a coded error.
// Context cancellation stays in the chain so callers can match it with
// errors.Is(err, context.Canceled).
func transportError(method, endpoint string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apierrors.Wrap(apierrors.ErrCodeTimeout, err, "%s %s", method, endpoint)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apierrors.Wrap(apierrors.ErrCodeTimeout, err, "%s %s", method, endpoint)
	}
	return apierrors.Wrap(apierrors.ErrCodeNetwork, err, "%s %s", method, endpoint)
}
