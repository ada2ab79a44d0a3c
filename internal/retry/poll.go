package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExhausted is returned by Poll when the attempt budget runs out before
// the check reports done.
var ErrExhausted = errors.New("poll attempts exhausted")

// PollConfig holds fixed-interval polling configuration.
type PollConfig struct {
	// Interval is the fixed delay between attempts.
	Interval time.Duration

	// MaxAttempts is the total number of checks performed before giving up.
	MaxAttempts int

	// Sleep waits for the given duration or until the context is done.
	// Replaceable in tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

// PollOption is a functional option for polling configuration.
type PollOption func(*PollConfig)

// WithInterval sets the fixed delay between poll attempts.
func WithInterval(d time.Duration) PollOption {
	return func(c *PollConfig) {
		c.Interval = d
	}
}

// WithMaxAttempts sets the total number of poll attempts.
func WithMaxAttempts(n int) PollOption {
	return func(c *PollConfig) {
		c.MaxAttempts = n
	}
}

// WithSleep replaces the sleep function. Used by tests to observe and skip
// the fixed intervals.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) PollOption {
	return func(c *PollConfig) {
		c.Sleep = fn
	}
}

// Poll invokes check at a fixed interval until it reports done, returns a
// fatal error, or the attempt budget is exhausted.
//
// check returns (true, nil) when the awaited condition holds, (false, nil)
// to keep waiting, or an error. Errors wrapped with Fatal() abort the poll
// immediately; other errors are treated as transient and consume an attempt.
// No sleep follows the final attempt.
func Poll(ctx context.Context, check func(ctx context.Context) (bool, error), opts ...PollOption) error {
	cfg := &PollConfig{
		Interval:    60 * time.Second,
		MaxAttempts: 15,
		Sleep:       sleepContext,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		done, err := check(ctx)
		if err != nil {
			if IsFatal(err) {
				return err
			}
			lastErr = err
		} else if done {
			return nil
		}

		if attempt < cfg.MaxAttempts {
			if err := cfg.Sleep(ctx, cfg.Interval); err != nil {
				return fmt.Errorf("poll interrupted after %d attempts: %w", attempt, err)
			}
		}
	}

	if lastErr != nil {
		return fmt.Errorf("%w after %d attempts: %v", ErrExhausted, cfg.MaxAttempts, lastErr)
	}
	return fmt.Errorf("%w after %d attempts", ErrExhausted, cfg.MaxAttempts)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
