package retry

import (
	"context"
	"time"
)

// Predicate determines whether an error should be retried.
type Predicate func(error) bool

// Config controls retry behavior. The remote API's retry contract is a
// fixed sleep between attempts; there is no exponential backoff here.
type Config struct {
	// MaxAttempts caps the number of attempts. Zero or negative means
	// unbounded: keep retrying until fn succeeds, the predicate says
	// stop, or the context is cancelled.
	MaxAttempts int

	// Interval is the fixed delay between attempts.
	Interval time.Duration
}

// Do executes fn, retrying with a fixed interval while shouldRetry
// approves the error. Context cancellation aborts the sleep
// immediately and returns ctx.Err().
func Do(ctx context.Context, config Config, shouldRetry Predicate, fn func() error) error {
	if shouldRetry == nil {
		shouldRetry = func(error) bool { return false }
	}

	var err error
	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = fn()
		if err == nil {
			return nil
		}
		if !shouldRetry(err) {
			return err
		}
		if config.MaxAttempts > 0 && attempt >= config.MaxAttempts {
			return err
		}

		if !sleep(ctx, config.Interval) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
