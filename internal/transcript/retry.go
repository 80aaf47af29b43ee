package transcript

import (
	"context"
	"time"
)

// SleepFunc suspends for d or until ctx is done. Injectable for tests.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RetryConfig drives the per-strategy retry loop. The delay before
// retry attempt i (0-indexed) is InitialDelay * 2^i, with no jitter.
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	Sleep        SleepFunc
	OnRetry      func(attempt int, err error, delay time.Duration)
}

// Retry runs op up to MaxRetries+1 times, sleeping between failed
// attempts. It returns nil on the first success, or the error from
// the final attempt; errors are never aggregated.
func Retry(ctx context.Context, cfg RetryConfig, op func(ctx context.Context) error) error {
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = defaultSleep
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := op(ctx); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == cfg.MaxRetries {
			break
		}

		delay := cfg.InitialDelay << attempt
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, lastErr, delay)
		}
		if err := sleep(ctx, delay); err != nil {
			return lastErr
		}
	}
	return lastErr
}
