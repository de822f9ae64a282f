package retry

import (
	"context"
	"math/rand"
	"time"
)

// Budget bounds the retry sequence of a single write operation: an overall
// window after which the operation gives up, and a randomized wait range
// applied between attempts. A Budget is never shared across operations.
type Budget struct {
	// NoRetry performs exactly one attempt; any non-success response is
	// final. Used for read-only lookups.
	NoRetry bool
	// Window is the total time allowed for attempts, measured from the
	// first one. With Window = 0 a retryable response times the request
	// out after a single attempt.
	Window time.Duration
	// BackoffMin/BackoffMax bound the randomized sleep between attempts.
	BackoffMin time.Duration
	BackoffMax time.Duration
}

// Default mirrors the service's job-slot contention profile: provisioning
// slots free up on the order of a minute, so short exponential backoff
// only burns the budget.
var Default = Budget{
	Window:     10 * time.Minute,
	BackoffMin: 50 * time.Second,
	BackoffMax: 70 * time.Second,
}

// None returns a single-attempt budget.
func None() Budget { return Budget{NoRetry: true} }

// Deadline converts the window into an absolute deadline.
func (b Budget) Deadline(now time.Time) time.Time { return now.Add(b.Window) }

// Wait sleeps a uniformly random duration within the budget's backoff
// range, or returns ctx.Err() if the context is cancelled first.
// BackoffMin == BackoffMax sleeps exactly that long; the sleep never
// exceeds BackoffMax.
func Wait(ctx context.Context, rng *rand.Rand, b Budget) error {
	sleep := b.BackoffMin
	if sleep <= 0 {
		sleep = Default.BackoffMin
	}
	if span := b.BackoffMax - sleep; span > 0 {
		sleep += time.Duration(rng.Int63n(int64(span)))
	}

	timer := time.NewTimer(sleep)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
