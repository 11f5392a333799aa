// Package retry wraps best-effort external calls in bounded exponential
// backoff.
package retry

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Policy bounds the attempts of a retried call.
type Policy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
}

// DefaultPolicy suits a single expensive model call per run.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    3,
		InitialBackoff: 2 * time.Second,
		MaxBackoff:     30 * time.Second,
		BackoffFactor:  2.0,
	}
}

// Do runs fn until it succeeds, the attempts are spent, or the context ends.
// The sleep between attempts grows by BackoffFactor, capped at MaxBackoff.
func Do(ctx context.Context, policy Policy, fn func(context.Context) error) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := fn(ctx); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(backoff(policy, attempt)):
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}

func backoff(policy Policy, attempt int) time.Duration {
	d := float64(policy.InitialBackoff) * math.Pow(policy.BackoffFactor, float64(attempt))
	if max := float64(policy.MaxBackoff); policy.MaxBackoff > 0 && d > max {
		d = max
	}
	return time.Duration(d)
}
