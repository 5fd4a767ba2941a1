package types

import (
	"context"
	"time"
)

// ProcessHandle owns a spawned OS process.
type ProcessHandle interface {
	// PID returns the OS process id of the spawned process.
	PID() int

	// Exited reports whether the spawned process has been observed to exit.
	// For terminal-window launches this is the launcher process (osascript,
	// gnome-terminal, cmd), which may exit long before the script does.
	Exited() bool

	// Terminate asks the process (and its process group where supported) to stop.
	Terminate() error

	// Wait blocks until the process exits or ctx is done.
	Wait(ctx context.Context) error
}

// ProcessInfo is a snapshot of a tracked process
type ProcessInfo struct {
	Name      string    `json:"name"`
	LaunchID  string    `json:"launch_id"`
	Path      string    `json:"path"`
	PID       int       `json:"pid"`
	Strategy  string    `json:"strategy"`
	StartedAt time.Time `json:"started_at"`
	Exited    bool      `json:"exited"`
}

// OutputReader is implemented by handles that capture the process output.
type OutputReader interface {
	Output() []byte
}
