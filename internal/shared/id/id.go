// Package id provides ULID-based identifiers for launched processes and
// admin API requests.
//
// IDs are prefixed ULIDs (run_01J..., trace_01J...). They sort by creation time and
// make log lines from one launch easy to correlate across console, HTTP and
// shutdown output.
package id

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// LaunchID identifies a single successful launch of an app
type LaunchID string

// Prefixes mark ID kinds in logs and API responses
const (
	LaunchPrefix = "run"
	TracePrefix  = "trace"
)

// generator serialises reads from its entropy source
type generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

var gen = &generator{entropy: rand.Reader}

func (g *generator) next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return prefix + "_" + ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

// NewLaunchID generates a new launch ID
func NewLaunchID() LaunchID {
	return LaunchID(gen.next(LaunchPrefix))
}

// NewTraceID generates an admin API request trace ID
func NewTraceID() string {
	return gen.next(TracePrefix)
}

func (id LaunchID) String() string { return string(id) }
