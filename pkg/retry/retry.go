package retry

import (
	"context"
	"errors"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

type Policy struct {
	Attempts uint64
	Base     time.Duration
	// JitterPercent spreads each wait by +/- the given percent.
	JitterPercent uint64
}

func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Base: 20 * time.Millisecond, JitterPercent: 50}
}

// AfterError replaces the next backoff step with Wait, e.g. a server's Retry-After.
type AfterError struct {
	Err  error
	Wait time.Duration
}

func (e *AfterError) Error() string { return e.Err.Error() }

func (e *AfterError) Unwrap() error { return e.Err }

func After(err error, wait time.Duration) error {
	return &AfterError{Err: err, Wait: wait}
}

// Do runs fn until it succeeds, returns an error rejected by retryable, or
// Attempts runs are used up. The last error is returned unwrapped.
func Do(ctx context.Context, p Policy, retryable func(error) bool, fn func(ctx context.Context) error) error {
	if p.Attempts <= 1 {
		return fn(ctx)
	}

	var next goretry.Backoff = goretry.BackoffFunc(func() (time.Duration, bool) { return 0, false })
	if p.Base > 0 {
		next = goretry.NewExponential(p.Base)
		if p.JitterPercent > 0 {
			next = goretry.WithJitterPercent(p.JitterPercent, next)
		}
	}
	next = goretry.WithMaxRetries(p.Attempts-1, next)

	var override *time.Duration
	b := goretry.BackoffFunc(func() (time.Duration, bool) {
		wait, stop := next.Next()
		if !stop && override != nil {
			wait = *override
		}
		override = nil
		return wait, stop
	})

	return goretry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil || !retryable(err) {
			return err
		}
		var after *AfterError
		if errors.As(err, &after) {
			wait := after.Wait
			override = &wait
		}
		return goretry.RetryableError(err)
	})
}
