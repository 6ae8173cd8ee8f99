// Package retrier provides bounded exponential backoff for transient
// exchange API failures.
package retrier

import (
	"context"
	"math/rand"
	"time"
)

// Policy controls how a call is retried. Attempts counts every try,
// including the first one.
type Policy struct {
	Attempts int
	Base     time.Duration
	Cap      time.Duration
	Factor   float64
	// Jitter is the fraction of each delay randomized either way.
	Jitter float64
}

// Default returns the policy used for exchange API calls.
func Default() Policy {
	return Policy{
		Attempts: 3,
		Base:     500 * time.Millisecond,
		Cap:      5 * time.Second,
		Factor:   2.0,
		Jitter:   0.1,
	}
}

// Do runs fn until it succeeds, the attempts are exhausted or ctx is
// cancelled. The last error is returned on exhaustion.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.Base
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			jitter := (rand.Float64()*2 - 1) * p.Jitter * float64(delay)
			sleep := time.Duration(float64(delay) + jitter)
			if sleep < 0 {
				sleep = 0
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleep):
			}

			delay = time.Duration(float64(delay) * p.Factor)
			if p.Cap > 0 && delay > p.Cap {
				delay = p.Cap
			}
		}

		if err = fn(ctx); err == nil {
			return nil
		}
	}
	return err
}

// Fetch retries a call that returns a value.
func Fetch[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := p.Do(ctx, func(ctx context.Context) error {
		var innerErr error
		result, innerErr = fn(ctx)
		return innerErr
	})
	return result, err
}
