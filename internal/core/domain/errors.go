package domain

import (
	"errors"
	"fmt"
)

// ErrSolverUnavailable marks network or non-success failures of the external
// route solver. Callers treat it as a gateway failure, never as client error.
var ErrSolverUnavailable = errors.New("route solver unavailable")

// ErrNotFound marks a missing roster record or run.
var ErrNotFound = errors.New("not found")

// ValidationError reports the first offending field of a malformed
// optimize request. Surfaced to the caller as a 400, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
