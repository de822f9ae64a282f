package cvs

import "fmt"

// ValidationError reports bad caller input, detected before any request is
// sent.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// PermanentError is a non-retryable API response. The request was rejected
// and repeating it unchanged will not help.
type PermanentError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("api: %s returned %d: %s", e.URL, e.StatusCode, e.Message)
}

// TimeoutError is raised when a retry budget or poll window is exhausted.
// It carries the last observed response so operators can tell job-slot
// contention from a wedged resource.
type TimeoutError struct {
	Op         string
	ResourceID string
	LastStatus int
	LastDetail string
}

func (e *TimeoutError) Error() string {
	if e.ResourceID != "" {
		return fmt.Sprintf("%s: timed out waiting on %s (last: %s)", e.Op, e.ResourceID, e.LastDetail)
	}
	return fmt.Sprintf("%s: timed out (last status %d: %s)", e.Op, e.LastStatus, e.LastDetail)
}

// RemoteError reports a resource that reached the explicit "error"
// lifecycle state, with the detail string the service attached to it.
type RemoteError struct {
	ResourceID string
	State      string
	Detail     string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote: %s entered state %q: %s", e.ResourceID, e.State, e.Detail)
}

// QuotaExceededError means a volume already holds the maximum number of
// backups, so rotation cannot create a new one before pruning.
type QuotaExceededError struct {
	VolumeID string
	Max      int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("volume %s already has the maximum of %d backups", e.VolumeID, e.Max)
}

// UnknownServiceLevelError reports a service level absent from the
// translation table. Callers must never pass the value through untranslated.
type UnknownServiceLevelError struct {
	Level string
}

func (e *UnknownServiceLevelError) Error() string {
	return fmt.Sprintf("unknown service level %q", e.Level)
}
