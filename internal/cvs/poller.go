package cvs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// ResourceState is one observed lifecycle snapshot of a remote resource.
type ResourceState struct {
	ID     string
	State  string
	Detail string
}

// FetchFunc reads the current state of a resource. Fetch failures abort
// the poll immediately; polling already assumes the remote is reachable.
type FetchFunc func(ctx context.Context, resourceID, region string) (ResourceState, error)

// TerminalFunc decides whether polling may stop. Returning an error marks
// that terminal as a failure (e.g. lifecycle "error").
type TerminalFunc func(ResourceState) (bool, error)

// StateLeft is terminal once the resource leaves the given transient
// state, whatever it moved to. Callers inspect the final state themselves.
func StateLeft(transient string) TerminalFunc {
	return func(st ResourceState) (bool, error) {
		return st.State != transient, nil
	}
}

// StateReached is terminal when the resource arrives at target. The
// "error" state is a distinct failure terminal carrying the service's
// detail string.
func StateReached(target string) TerminalFunc {
	return func(st ResourceState) (bool, error) {
		if st.State == StateError {
			return true, &RemoteError{ResourceID: st.ID, State: st.State, Detail: st.Detail}
		}
		return st.State == target, nil
	}
}

// PollSpec tracks one accepted-but-unfinished operation to its terminal
// state. It lives for a single orchestrated operation and is not shared.
type PollSpec struct {
	ResourceID string
	Region     string
	// Interval between fetches.
	Interval time.Duration
	// Window bounds the whole poll. Zero polls until the state turns
	// terminal or ctx is cancelled; that is an explicit caller choice,
	// never a hidden default.
	Window   time.Duration
	Fetch    FetchFunc
	Terminal TerminalFunc
}

// AwaitTerminal sleeps spec.Interval, fetches, and checks the terminal
// predicate, until terminal, deadline, or cancellation.
func AwaitTerminal(ctx context.Context, spec PollSpec) (ResourceState, error) {
	var deadline time.Time
	if spec.Window > 0 {
		deadline = time.Now().Add(spec.Window)
	}

	timer := time.NewTimer(spec.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ResourceState{}, ctx.Err()
		case <-timer.C:
		}

		st, err := spec.Fetch(ctx, spec.ResourceID, spec.Region)
		if err != nil {
			return ResourceState{}, err
		}

		done, err := spec.Terminal(st)
		if err != nil {
			log.Error().
				Str("action", "poll").
				Str("resource", spec.ResourceID).
				Str("state", st.State).
				Str("detail", st.Detail).
				Msg("resource reached failure state")
			return st, err
		}
		if done {
			log.Debug().
				Str("action", "poll").
				Str("resource", spec.ResourceID).
				Str("state", st.State).
				Msg("resource reached terminal state")
			return st, nil
		}

		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return st, &TimeoutError{
				Op:         "poll",
				ResourceID: spec.ResourceID,
				LastDetail: "still in state " + st.State,
			}
		}

		log.Info().
			Str("action", "poll").
			Str("resource", spec.ResourceID).
			Str("state", st.State).
			Msg("still waiting")
		timer.Reset(spec.Interval)
	}
}
