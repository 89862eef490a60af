package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Policy runs an operation with pacing, bounded attempts and exponential backoff.
// Pacing is slept before every attempt; Jitter is a fraction (0.2 = ±20%) applied to each backoff delay.
type Policy struct {
	MaxAttempts int
	Pacing      time.Duration
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      float64
	Retryable   func(error) bool
	Sleep       func(ctx context.Context, d time.Duration) error
	Logger      *zap.Logger
}

// DefaultPolicy returns the provider policy: 4 attempts, 900ms pacing, 1.2s base backoff
func DefaultPolicy(logger *zap.Logger) Policy {
	return Policy{
		MaxAttempts: 4,
		Pacing:      900 * time.Millisecond,
		BaseDelay:   1200 * time.Millisecond,
		MaxDelay:    30 * time.Second,
		Retryable:   IsRetryable,
		Sleep:       SleepContext,
		Logger:      logger,
	}
}

// SleepContext waits for d or until ctx is done
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Backoff returns the delay after the given zero-based attempt: BaseDelay * 2^attempt, capped at MaxDelay
func (p Policy) Backoff(attempt int) time.Duration {
	d := p.BaseDelay << uint(attempt)
	if p.MaxDelay > 0 && (d > p.MaxDelay || d <= 0) {
		d = p.MaxDelay
	}
	if p.Jitter > 0 {
		delta := float64(d) * p.Jitter
		d = time.Duration(float64(d) - delta + rand.Float64()*2*delta)
	}
	return d
}

// Do calls fn until it succeeds, returns a non-retryable error, or MaxAttempts is reached.
// The last error is returned on failure.
func (p Policy) Do(ctx context.Context, name string, fn func(ctx context.Context, attempt int) error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if sleepErr := sleep(ctx, p.Pacing); sleepErr != nil {
			return sleepErr
		}

		err = fn(ctx, attempt)
		if err == nil {
			return nil
		}

		if !retryable(err) {
			logger.Warn("Request failed, not retrying",
				zap.String("op", name),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			return err
		}
		if attempt == attempts-1 {
			break
		}

		sleepFor := p.Backoff(attempt)
		var status *HTTPStatusError
		if errors.As(err, &status) && status.RetryAfter > sleepFor {
			sleepFor = status.RetryAfter
			if p.MaxDelay > 0 && sleepFor > p.MaxDelay {
				sleepFor = p.MaxDelay
			}
		}

		logger.Warn("Request failed, retrying",
			zap.String("op", name),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", attempts),
			zap.Duration("sleep", sleepFor),
			zap.Error(err),
		)

		if sleepErr := sleep(ctx, sleepFor); sleepErr != nil {
			return sleepErr
		}
	}

	logger.Warn("Retries exhausted",
		zap.String("op", name),
		zap.Int("attempts", attempts),
		zap.Error(err),
	)
	return err
}
