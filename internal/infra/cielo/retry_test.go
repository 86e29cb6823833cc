package cielo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func recordingSleep(delays *[]time.Duration) sleepFunc {
	return func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func TestWithRetryNonRetriableStatuses(t *testing.T) {
	for _, status := range []int{400, 401, 403, 422} {
		t.Run(fmt.Sprintf("status %d", status), func(t *testing.T) {
			var delays []time.Duration
			attempts := 0
			op := func() error {
				attempts++
				return &Error{StatusCode: status, Message: "client error"}
			}

			err := withRetry(context.Background(), discardLogger(), op, 3, time.Second, 2, recordingSleep(&delays))

			assert.Error(t, err)
			assert.Equal(t, 1, attempts, "non-retriable errors must use exactly one attempt")
			assert.Empty(t, delays)
		})
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	var delays []time.Duration
	attempts := 0
	op := func() error {
		attempts++
		return errors.New("connection reset")
	}

	err := withRetry(context.Background(), discardLogger(), op, 3, time.Second, 2, recordingSleep(&delays))

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestWithRetryBackoffSequence(t *testing.T) {
	var delays []time.Duration
	op := func() error {
		return &Error{StatusCode: 500, Message: "internal"}
	}

	err := withRetry(context.Background(), discardLogger(), op, 5, 100*time.Millisecond, 2, recordingSleep(&delays))

	assert.Error(t, err)
	expected := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
	}
	assert.Equal(t, expected, delays)
}

func TestWithRetrySucceedsAfterTransientFailure(t *testing.T) {
	var delays []time.Duration
	attempts := 0
	op := func() error {
		attempts++
		if attempts == 1 {
			return &Error{StatusCode: 503, Message: "unavailable"}
		}
		return nil
	}

	err := withRetry(context.Background(), discardLogger(), op, 3, time.Second, 2, recordingSleep(&delays))

	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, []time.Duration{time.Second}, delays)
}

func TestWithRetryStopsWhenSleepCancelled(t *testing.T) {
	attempts := 0
	op := func() error {
		attempts++
		return errors.New("timeout")
	}
	cancelledSleep := func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}

	err := withRetry(context.Background(), discardLogger(), op, 3, time.Second, 2, cancelledSleep)

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}
