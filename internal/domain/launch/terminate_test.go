package launch

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	pid          int
	terminateErr error
	exitOnSignal bool
	exited       bool
	terminated   int
	done         chan struct{}
}

func newFakeHandle(pid int) *fakeHandle {
	return &fakeHandle{pid: pid, done: make(chan struct{})}
}

func (f *fakeHandle) PID() int     { return f.pid }
func (f *fakeHandle) Exited() bool { return f.exited }

func (f *fakeHandle) Terminate() error {
	f.terminated++
	if f.terminateErr != nil {
		return f.terminateErr
	}
	if f.exitOnSignal {
		f.exited = true
		close(f.done)
	}
	return nil
}

func (f *fakeHandle) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestGracefulStopExits(t *testing.T) {
	h := newFakeHandle(42)
	h.exitOnSignal = true

	err := NewGracefulStop(time.Second, nil).Terminate(context.Background(), h)

	assert.NoError(t, err)
	assert.Equal(t, 1, h.terminated)
}

func TestGracefulStopAlreadyExited(t *testing.T) {
	h := newFakeHandle(42)
	h.terminateErr = os.ErrProcessDone

	assert.NoError(t, NewGracefulStop(time.Second, nil).Terminate(context.Background(), h))
}

func TestGracefulStopTimeoutCountsAsClosed(t *testing.T) {
	h := newFakeHandle(42)

	start := time.Now()
	err := NewGracefulStop(20*time.Millisecond, nil).Terminate(context.Background(), h)

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestGracefulStopSignalFailure(t *testing.T) {
	h := newFakeHandle(42)
	h.terminateErr = errors.New("operation not permitted")

	err := NewGracefulStop(time.Second, nil).Terminate(context.Background(), h)

	assert.ErrorIs(t, err, h.terminateErr)
}

func TestGracefulStopParentCancelled(t *testing.T) {
	h := newFakeHandle(42)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewGracefulStop(time.Second, nil).Terminate(ctx, h)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestGracefulStopDefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultCloseTimeout, NewGracefulStop(0, nil).timeout)
}

func TestTreeKillArgs(t *testing.T) {
	var got []string
	tk := NewTreeKill(nil).WithRunner(func(_ context.Context, name string, args ...string) error {
		got = append([]string{name}, args...)
		return nil
	})

	require.NoError(t, tk.Terminate(context.Background(), newFakeHandle(1234)))
	assert.Equal(t, []string{"taskkill", "/F", "/T", "/PID", "1234"}, got)
}

func TestTreeKillFailure(t *testing.T) {
	cause := errors.New("access denied")
	tk := NewTreeKill(nil).WithRunner(func(context.Context, string, ...string) error {
		return cause
	})

	err := tk.Terminate(context.Background(), newFakeHandle(7))
	assert.ErrorIs(t, err, cause)

	gone := newFakeHandle(8)
	gone.exited = true
	assert.NoError(t, tk.Terminate(context.Background(), gone))
}
