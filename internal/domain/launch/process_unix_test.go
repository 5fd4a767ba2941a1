//go:build unix

package launch

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/MiraOS/internal/shared/types"
)

func startSleeper(t *testing.T) *Process {
	t.Helper()
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	p, err := spawn(context.Background(), "test", types.NewItem("/bin/sleep"), exec.Command("sleep", "30"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.cmd.Process.Kill() })
	return p
}

func TestProcessTerminateAndReap(t *testing.T) {
	p := startSleeper(t)

	assert.Greater(t, p.PID(), 0)
	assert.False(t, p.Exited())

	require.NoError(t, p.Terminate())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Wait(ctx))
	assert.True(t, p.Exited())
	assert.Error(t, p.ExitErr())

	assert.ErrorIs(t, p.Terminate(), os.ErrProcessDone)
}

func TestProcessTerminateWhileExiting(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}

	for i := 0; i < 20; i++ {
		p, err := spawn(context.Background(), "test", types.NewItem("/bin/true"), exec.Command("true"))
		require.NoError(t, err)

		for !p.Exited() {
			if err := p.Terminate(); err != nil {
				require.ErrorIs(t, err, os.ErrProcessDone)
			}
		}

		assert.ErrorIs(t, p.Terminate(), os.ErrProcessDone)
	}
}

func TestProcessWaitHonoursContext(t *testing.T) {
	p := startSleeper(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, p.Wait(ctx), context.DeadlineExceeded)
	assert.False(t, p.Exited())
}

func TestGracefulStopRealProcess(t *testing.T) {
	p := startSleeper(t)

	require.NoError(t, NewGracefulStop(5*time.Second, nil).Terminate(context.Background(), p))
	assert.True(t, p.Exited())

	// A second stop on a reaped process is still a success
	assert.NoError(t, NewGracefulStop(time.Second, nil).Terminate(context.Background(), p))
}

func TestSpawnFailure(t *testing.T) {
	item := types.NewItem("/apps/a.py")
	_, err := spawn(context.Background(), "test", item, exec.Command(filepath.Join(t.TempDir(), "missing")))

	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, item, launchErr.Item)
}

func TestPTYCapturesOutput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	script := filepath.Join(t.TempDir(), "hello.sh")
	require.NoError(t, os.WriteFile(script, []byte("echo hello from pty\n"), 0o644))

	strategy, err := NewPTY("sh", 1024, nil)
	require.NoError(t, err)

	handle, err := strategy.Launch(context.Background(), types.NewItem(script))
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, handle.Wait(ctx))

	reader, ok := handle.(types.OutputReader)
	require.True(t, ok)
	assert.Eventually(t, func() bool {
		return strings.Contains(string(reader.Output()), "hello from pty")
	}, 2*time.Second, 10*time.Millisecond)
}
