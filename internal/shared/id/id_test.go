package id

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

func TestNewLaunchID(t *testing.T) {
	before := time.Now()
	launchID := NewLaunchID()

	raw, ok := strings.CutPrefix(launchID.String(), "run_")
	if !ok {
		t.Fatalf("LaunchID should start with 'run_', got: %s", launchID)
	}
	parsed, err := ulid.Parse(raw)
	if err != nil {
		t.Fatalf("LaunchID should wrap a valid ULID: %v", err)
	}

	// ULID timestamps have millisecond precision
	if ts := ulid.Time(parsed.Time()); ts.UnixMilli() < before.UnixMilli() {
		t.Errorf("timestamp %v predates generation at %v", ts, before)
	}
}

func TestNewTraceID(t *testing.T) {
	traceID := NewTraceID()

	raw, ok := strings.CutPrefix(traceID, "trace_")
	if !ok {
		t.Fatalf("trace ID should start with 'trace_', got: %s", traceID)
	}
	if _, err := ulid.Parse(raw); err != nil {
		t.Errorf("trace ID should wrap a valid ULID: %s", traceID)
	}
}

func TestIDsSortByCreation(t *testing.T) {
	first := NewLaunchID()
	time.Sleep(2 * time.Millisecond)
	second := NewLaunchID()

	if first >= second {
		t.Errorf("expected %s < %s", first, second)
	}
}

func TestConcurrentGeneration(t *testing.T) {
	const goroutines = 50
	const idsPerGoroutine = 50

	var wg sync.WaitGroup
	idChan := make(chan LaunchID, goroutines*idsPerGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				idChan <- NewLaunchID()
			}
		}()
	}

	wg.Wait()
	close(idChan)

	seen := make(map[LaunchID]bool)
	for id := range idChan {
		if seen[id] {
			t.Errorf("Duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
