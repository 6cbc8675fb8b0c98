package ai

import (
	"context"
	"fmt"
	"time"
)

// Default backoff parameters for remote calls.
const (
	DefaultBaseDelay  = 1 * time.Second
	DefaultMaxDelay   = 30 * time.Second
	DefaultMaxRetries = 6
)

// RetryConfig configures exponential backoff retry behavior.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	OnRetry    func(attempt int, delay time.Duration, err error)
}

// DefaultRetryConfig returns the 1s/30s/6 retry policy.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		MaxDelay:   DefaultMaxDelay,
	}
}

// BackoffDelay returns min(base * 2^attempt, max) for a zero-based attempt.
func BackoffDelay(attempt int, base, max time.Duration) time.Duration {
	delay := base
	for i := 0; i < attempt; i++ {
		if max > 0 && delay >= max {
			break
		}
		delay *= 2
	}
	if max > 0 && delay > max {
		delay = max
	}
	return delay
}

// sleep waits for d or until ctx is done. Tests replace it.
var sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryWithBackoff runs fn until it succeeds, fails with an error that
// retryable rejects, or MaxRetries retries have been spent.
// Delays: BaseDelay, BaseDelay*2, BaseDelay*4, ... capped at MaxDelay.
func RetryWithBackoff[T any](ctx context.Context, cfg RetryConfig, retryable func(error) bool, fn func(context.Context) (T, error)) (T, error) {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultMaxDelay
	}
	if retryable == nil {
		retryable = IsRetryable
	}

	var zero T
	attempt := 0
	for {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !retryable(err) {
			return zero, err
		}
		if attempt >= cfg.MaxRetries {
			return zero, fmt.Errorf("max retries (%d) exceeded: %w", cfg.MaxRetries, err)
		}

		delay := BackoffDelay(attempt, cfg.BaseDelay, cfg.MaxDelay)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, delay, err)
		}
		if serr := sleep(ctx, delay); serr != nil {
			return zero, serr
		}
		attempt++
	}
}
