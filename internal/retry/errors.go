package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const maxErrorBody = 1000

// HTTPStatusError is a non-2xx provider response
type HTTPStatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

// NewHTTPStatusError captures status, a truncated body, and any numeric Retry-After header
func NewHTTPStatusError(resp *http.Response, body []byte) *HTTPStatusError {
	e := &HTTPStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	if len(e.Body) > maxErrorBody {
		e.Body = e.Body[:maxErrorBody]
	}
	if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
			e.RetryAfter = time.Duration(secs) * time.Second
		}
	}
	return e
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// IsRetryableStatus reports 429 and 5xx
func IsRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsRetryable is the default transient-failure predicate: 429, 5xx and transport errors retry;
// other statuses, permanent errors and cancellation do not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var perm *permanentError
	if errors.As(err, &perm) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var status *HTTPStatusError
	if errors.As(err, &status) {
		return IsRetryableStatus(status.StatusCode)
	}
	return true
}
