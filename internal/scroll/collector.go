// Package scroll drives a paginated source until enough unique items have
// been observed, trading completeness for bounded latency.
package scroll

import (
	"context"
	"fmt"
	"time"
)

// Source is one scrollable view of an external page. Visible returns the
// identity keys of the currently rendered items; Advance reveals more.
type Source interface {
	Visible(ctx context.Context) ([]string, error)
	Advance(ctx context.Context) error
}

// Options bound a collection run.
type Options struct {
	// Target is the unique-item count at which collection stops early.
	Target int
	// MaxSteps caps the number of scroll attempts. Exhausting it is a
	// success state, not an error.
	MaxSteps int
	// Settle is how long to wait after each advance so the source can
	// render newly revealed items.
	Settle time.Duration
}

// Collect reads the source up to MaxSteps times, deduplicating by key, and
// returns the unique keys in first-seen order. Reaching the target and
// exhausting the budget are both normal terminations; an empty result is a
// legitimate outcome for a source with no matching items.
func Collect(ctx context.Context, src Source, opts Options) ([]string, error) {
	seen := make(map[string]struct{})
	var collected []string

	for step := 0; step < opts.MaxSteps; step++ {
		keys, err := src.Visible(ctx)
		if err != nil {
			return collected, fmt.Errorf("read visible items: %w", err)
		}

		for _, key := range keys {
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			collected = append(collected, key)
		}

		if len(collected) >= opts.Target {
			break
		}

		if err := src.Advance(ctx); err != nil {
			return collected, fmt.Errorf("advance source: %w", err)
		}

		select {
		case <-ctx.Done():
			return collected, ctx.Err()
		case <-time.After(opts.Settle):
		}
	}

	return collected, nil
}
