// Package retry wraps flaky calls with capped exponential backoff.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Config controls how Do behaves.
type Config struct {
	// MaxAttempts counts the first call too. Values below 1 mean a single
	// attempt with no retries.
	MaxAttempts int
	// InitialDelay is the pause before the second attempt; each following
	// pause doubles until it hits MaxDelay.
	InitialDelay time.Duration
	// MaxDelay caps the pause between attempts.
	MaxDelay time.Duration
	// ShouldRetry classifies errors. A nil predicate retries everything.
	ShouldRetry func(err error) bool
}

// DefaultConfig suits short network calls.
var DefaultConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 500 * time.Millisecond,
	MaxDelay:     10 * time.Second,
}

func (c Config) normalized() Config {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = DefaultConfig.InitialDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = DefaultConfig.MaxDelay
	}
	if c.ShouldRetry == nil {
		c.ShouldRetry = func(error) bool { return true }
	}
	return c
}

// Do runs fn until it succeeds, the attempts run out, ShouldRetry rejects
// the error, or ctx is done. It returns the last error fn produced, joined
// with the context error when the context ended the loop.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	cfg = cfg.normalized()

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return errors.Join(lastErr, err)
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt >= cfg.MaxAttempts || !cfg.ShouldRetry(lastErr) {
			return lastErr
		}

		slog.Debug("retrying after failure",
			"attempt", attempt, "max", cfg.MaxAttempts, "delay", delay, "err", lastErr)

		select {
		case <-ctx.Done():
			return errors.Join(lastErr, ctx.Err())
		case <-time.After(delay):
		}
		if delay *= 2; delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
}
