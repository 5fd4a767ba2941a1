package app

import (
	"errors"
	"fmt"
)

var (
	// ErrAppNotFound means no catalog item has the requested name
	ErrAppNotFound = errors.New("app not found")

	// ErrNotRunning means the name is not tracked in the registry
	ErrNotRunning = errors.New("app not running")

	// ErrNoOutput means the process was not launched with output capture
	ErrNoOutput = errors.New("output not captured for app")
)

// TerminationError reports a failed close. The entry has already been
// removed from the registry when this is returned.
type TerminationError struct {
	Name  string
	Cause error
}

func (e *TerminationError) Error() string {
	return fmt.Sprintf("terminate %s: %v", e.Name, e.Cause)
}

func (e *TerminationError) Unwrap() error {
	return e.Cause
}
