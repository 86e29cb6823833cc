package cielo

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// withRetry runs op up to maxAttempts times with pure exponential backoff
// (delay, delay*factor, delay*factor², no jitter). A *Error whose status
// marks it non-retriable aborts after the first attempt.
func withRetry(ctx context.Context, logger *slog.Logger, op func() error, maxAttempts int, delay time.Duration, factor float64, sleep sleepFunc) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}

		var gerr *Error
		if errors.As(lastErr, &gerr) && !gerr.Retriable() {
			return lastErr
		}

		if attempt < maxAttempts {
			logger.Warn("gateway request failed, retrying",
				"attempt", attempt,
				"maxAttempts", maxAttempts,
				"delay", delay,
				"error", lastErr,
			)
			if err := sleep(ctx, delay); err != nil {
				return lastErr
			}
			delay = time.Duration(float64(delay) * factor)
		}
	}
	logger.Error("gateway request failed after all attempts", "attempts", maxAttempts, "error", lastErr)
	return lastErr
}
