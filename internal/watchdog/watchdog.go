// Package watchdog bounds how long a load may keep a view waiting.
package watchdog

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout means the load did not finish before the deadline.
var ErrTimeout = errors.New("loading timed out")

// Wait runs fn with a context that is cancelled after timeout. It returns
// ErrTimeout as soon as the deadline passes, even if fn is still running,
// so the caller can leave the loading state and offer a retry.
func Wait(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimeout
		}
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ctx.Err()
	}
}
