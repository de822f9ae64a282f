package cvs

import (
	"context"
	"errors"
	"testing"
	"time"
)

// sequenceFetch replays a fixed sequence of states; the last one repeats.
func sequenceFetch(states ...ResourceState) (FetchFunc, *int) {
	n := new(int)
	return func(ctx context.Context, resourceID, region string) (ResourceState, error) {
		i := *n
		if i >= len(states) {
			i = len(states) - 1
		}
		*n++
		return states[i], nil
	}, n
}

func TestAwaitTerminalLeavesCreating(t *testing.T) {
	fetch, n := sequenceFetch(
		ResourceState{ID: "v-1", State: StateCreating},
		ResourceState{ID: "v-1", State: StateCreating},
		ResourceState{ID: "v-1", State: StateAvailable},
	)
	st, err := AwaitTerminal(context.Background(), PollSpec{
		ResourceID: "v-1",
		Region:     "us-west1",
		Interval:   time.Millisecond,
		Window:     time.Second,
		Fetch:      fetch,
		Terminal:   StateLeft(StateCreating),
	})
	if err != nil {
		t.Fatalf("AwaitTerminal: %v", err)
	}
	if st.State != StateAvailable {
		t.Fatalf("state = %q, want available", st.State)
	}
	if *n != 3 {
		t.Fatalf("polls = %d, want 3", *n)
	}
}

func TestAwaitTerminalErrorStateIsRemoteError(t *testing.T) {
	fetch, _ := sequenceFetch(
		ResourceState{ID: "b-1", State: StateCreating},
		ResourceState{ID: "b-1", State: StateError, Detail: "backend blew a fuse"},
	)
	_, err := AwaitTerminal(context.Background(), PollSpec{
		ResourceID: "b-1",
		Interval:   time.Millisecond,
		Window:     time.Second,
		Fetch:      fetch,
		Terminal:   StateReached(StateAvailable),
	})
	var rerr *RemoteError
	if !errors.As(err, &rerr) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if rerr.Detail != "backend blew a fuse" {
		t.Fatalf("detail = %q", rerr.Detail)
	}
}

func TestAwaitTerminalWindowExceeded(t *testing.T) {
	fetch, _ := sequenceFetch(ResourceState{ID: "r-1", State: StateCreating})
	_, err := AwaitTerminal(context.Background(), PollSpec{
		ResourceID: "r-1",
		Interval:   time.Millisecond,
		Window:     5 * time.Millisecond,
		Fetch:      fetch,
		Terminal:   StateReached(StateAvailable),
	})
	var terr *TimeoutError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want TimeoutError", err)
	}
	if terr.ResourceID != "r-1" {
		t.Fatalf("ResourceID = %q", terr.ResourceID)
	}
}

func TestAwaitTerminalZeroWindowPollsUntilTerminal(t *testing.T) {
	// Window 0 keeps polling; the fixture turns terminal on the tenth
	// fetch, well past what any default window test would allow.
	states := make([]ResourceState, 10)
	for i := range states {
		states[i] = ResourceState{ID: "v-1", State: StateCreating}
	}
	states[9] = ResourceState{ID: "v-1", State: StateAvailable}
	fetch, n := sequenceFetch(states...)

	st, err := AwaitTerminal(context.Background(), PollSpec{
		ResourceID: "v-1",
		Interval:   time.Millisecond,
		Fetch:      fetch,
		Terminal:   StateLeft(StateCreating),
	})
	if err != nil {
		t.Fatalf("AwaitTerminal: %v", err)
	}
	if st.State != StateAvailable || *n != 10 {
		t.Fatalf("state = %q after %d polls", st.State, *n)
	}
}

func TestAwaitTerminalCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetch, _ := sequenceFetch(ResourceState{State: StateCreating})
	_, err := AwaitTerminal(ctx, PollSpec{
		ResourceID: "v-1",
		Interval:   time.Hour,
		Fetch:      fetch,
		Terminal:   StateLeft(StateCreating),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestAwaitTerminalFetchErrorPropagates(t *testing.T) {
	boom := &PermanentError{StatusCode: 403, Message: "forbidden", URL: "u"}
	_, err := AwaitTerminal(context.Background(), PollSpec{
		ResourceID: "v-1",
		Interval:   time.Millisecond,
		Window:     time.Second,
		Fetch: func(ctx context.Context, resourceID, region string) (ResourceState, error) {
			return ResourceState{}, boom
		},
		Terminal: StateLeft(StateCreating),
	})
	var perr *PermanentError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want the fetch error", err)
	}
}
