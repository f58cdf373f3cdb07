package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by LeadStore.Get for an unknown lead ID.
var ErrNotFound = errors.New("lead not found")

// ErrNotConfigured is returned when the research collaborator has no API
// credential. Surfaced to the caller, never swallowed.
var ErrNotConfigured = errors.New("research API key not configured")

// ValidationError marks malformed or missing mandatory input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// InvalidTransitionError is returned when a lifecycle action is attempted
// from a status its guard does not allow.
type InvalidTransitionError struct {
	Action string
	Status Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s lead in status %q", e.Action, e.Status)
}

// InvalidStatusError is returned for a status string outside the enumeration.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("unknown status %q", e.Value)
}

// FetchError wraps a failed page retrieval: network error, timeout, or
// non-2xx response. StatusCode is zero for transport-level failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error { return e.Err }
