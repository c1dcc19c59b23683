package maps

import (
	"context"
	"errors"
	"time"
)

// ErrWaitTimeout is returned by waitUntil when the deadline passes before
// the predicate holds. Callers usually proceed anyway.
var ErrWaitTimeout = errors.New("wait: deadline elapsed before condition held")

// waitUntil polls cond every interval until it reports true, the timeout
// elapses, or ctx is done. Errors from cond count as "not yet".
func waitUntil(ctx context.Context, timeout, interval time.Duration, cond func(ctx context.Context) (bool, error)) error {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	deadline := time.Now().Add(timeout)

	for {
		if ok, err := cond(ctx); err == nil && ok {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ErrWaitTimeout
		}
		sleep := interval
		if remaining < sleep {
			sleep = remaining
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
