package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder captures requested sleeps instead of waiting
type recorder struct {
	sleeps []time.Duration
}

func (r *recorder) sleep(ctx context.Context, d time.Duration) error {
	r.sleeps = append(r.sleeps, d)
	return ctx.Err()
}

func testPolicy(r *recorder) Policy {
	p := DefaultPolicy(zap.NewNop())
	p.Sleep = r.sleep
	return p
}

func statusErr(code int) error {
	return &HTTPStatusError{StatusCode: code, Body: http.StatusText(code)}
}

func TestPolicy_AlwaysUnavailable(t *testing.T) {
	rec := &recorder{}
	calls := 0

	err := testPolicy(rec).Do(context.Background(), "test", func(ctx context.Context, attempt int) error {
		assert.Equal(t, calls, attempt)
		calls++
		return statusErr(http.StatusServiceUnavailable)
	})

	require.Error(t, err)
	assert.Equal(t, 4, calls)

	pacing := 900 * time.Millisecond
	assert.Equal(t, []time.Duration{
		pacing, 1200 * time.Millisecond,
		pacing, 2400 * time.Millisecond,
		pacing, 4800 * time.Millisecond,
		pacing,
	}, rec.sleeps)

	var backoffs []time.Duration
	for _, d := range rec.sleeps {
		if d != pacing {
			backoffs = append(backoffs, d)
		}
	}
	for i := 1; i < len(backoffs); i++ {
		assert.Greater(t, backoffs[i], backoffs[i-1])
	}
}

func TestPolicy_AttemptCounts(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedCalls int
	}{
		{name: "bad request", err: statusErr(http.StatusBadRequest), expectedCalls: 1},
		{name: "unauthorized", err: statusErr(http.StatusUnauthorized), expectedCalls: 1},
		{name: "too many requests", err: statusErr(http.StatusTooManyRequests), expectedCalls: 4},
		{name: "bad gateway", err: statusErr(http.StatusBadGateway), expectedCalls: 4},
		{name: "transport error", err: errors.New("connection reset by peer"), expectedCalls: 4},
		{name: "permanent", err: Permanent(errors.New("empty result")), expectedCalls: 1},
		{name: "wrapped permanent", err: fmt.Errorf("parse: %w", Permanent(errors.New("bad json"))), expectedCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := testPolicy(&recorder{}).Do(context.Background(), "test", func(ctx context.Context, attempt int) error {
				calls++
				return tt.err
			})

			assert.Error(t, err)
			assert.Equal(t, tt.expectedCalls, calls)
		})
	}
}

func TestPolicy_SucceedsAfterTransientFailures(t *testing.T) {
	rec := &recorder{}
	calls := 0

	err := testPolicy(rec).Do(context.Background(), "test", func(ctx context.Context, attempt int) error {
		calls++
		if calls < 3 {
			return statusErr(http.StatusInternalServerError)
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, rec.sleeps, 5)
}

func TestPolicy_HonorsRetryAfter(t *testing.T) {
	rec := &recorder{}
	p := testPolicy(rec)
	p.MaxAttempts = 2

	_ = p.Do(context.Background(), "test", func(ctx context.Context, attempt int) error {
		return &HTTPStatusError{StatusCode: http.StatusTooManyRequests, RetryAfter: 7 * time.Second}
	})

	assert.Equal(t, []time.Duration{900 * time.Millisecond, 7 * time.Second, 900 * time.Millisecond}, rec.sleeps)
}

func TestPolicy_StopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := testPolicy(&recorder{}).Do(ctx, "test", func(ctx context.Context, attempt int) error {
		calls++
		cancel()
		return statusErr(http.StatusServiceUnavailable)
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPolicy_Backoff(t *testing.T) {
	p := Policy{BaseDelay: time.Second, MaxDelay: 5 * time.Second}
	assert.Equal(t, time.Second, p.Backoff(0))
	assert.Equal(t, 2*time.Second, p.Backoff(1))
	assert.Equal(t, 4*time.Second, p.Backoff(2))
	assert.Equal(t, 5*time.Second, p.Backoff(3))

	p.Jitter = 0.2
	for i := 0; i < 50; i++ {
		d := p.Backoff(1)
		assert.GreaterOrEqual(t, d, 1600*time.Millisecond)
		assert.LessOrEqual(t, d, 2400*time.Millisecond)
	}
}

func TestNewHTTPStatusError(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
	resp.Header.Set("Retry-After", "3")
	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'x'
	}

	err := NewHTTPStatusError(resp, long)
	assert.Equal(t, 3*time.Second, err.RetryAfter)
	assert.Len(t, err.Body, 1000)
	assert.True(t, IsRetryable(err))
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, SleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)
}
