package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/MiraOS/internal/domain/app"
	"github.com/GriffinCanCode/MiraOS/internal/domain/discovery"
	"github.com/GriffinCanCode/MiraOS/internal/domain/launch"
	"github.com/GriffinCanCode/MiraOS/internal/shared/types"
)

type fakeController struct {
	catalog  []types.Item
	running  []types.ProcessInfo
	scanErr  error
	runErr   error
	closeErr error
	output   []byte
	outErr   error
	calls    []string
}

func (f *fakeController) Root() string { return "Modules" }

func (f *fakeController) Scan(context.Context) ([]types.Item, error) {
	f.calls = append(f.calls, "scan")
	if f.scanErr != nil {
		return []types.Item{}, f.scanErr
	}
	return f.catalog, nil
}

func (f *fakeController) Catalog() []types.Item {
	return f.catalog
}

func (f *fakeController) Run(_ context.Context, name string) (types.ProcessInfo, error) {
	f.calls = append(f.calls, "run "+name)
	if f.runErr != nil {
		return types.ProcessInfo{}, f.runErr
	}
	info := types.ProcessInfo{Name: name, PID: 100 + len(f.running), StartedAt: time.Now()}
	f.running = append(f.running, info)
	return info, nil
}

func (f *fakeController) Running() []types.ProcessInfo {
	return f.running
}

func (f *fakeController) Close(_ context.Context, name string) error {
	f.calls = append(f.calls, "close "+name)
	return f.closeErr
}

func (f *fakeController) Output(name string) ([]byte, error) {
	f.calls = append(f.calls, "output "+name)
	return f.output, f.outErr
}

func execute(t *testing.T, ctrl Controller, line string) string {
	t.Helper()
	var out bytes.Buffer
	assert.True(t, New(ctrl, nil, &out, nil).Execute(context.Background(), line))
	return out.String()
}

func TestBrowse(t *testing.T) {
	ctrl := &fakeController{}
	assert.Equal(t, "No apps found.\n", execute(t, ctrl, "browse"))

	ctrl.catalog = []types.Item{types.NewItem("/Modules/alpha.py"), types.NewItem("/Modules/games/beta.py")}
	out := execute(t, ctrl, "/browse")
	assert.Contains(t, out, "Available Apps:")
	assert.Contains(t, out, "  - alpha.py\n")
	assert.Contains(t, out, "  - beta.py\n")
}

func TestRun(t *testing.T) {
	ctrl := &fakeController{}

	assert.Equal(t, "App 'alpha.py' is now running.\n", execute(t, ctrl, "run alpha.py"))
	assert.Equal(t, "App 'my game.py' is now running.\n", execute(t, ctrl, "/run   my game.py  "))
	assert.Equal(t, []string{"run alpha.py", "run my game.py"}, ctrl.calls)
}

func TestArgumentAfterAnyWhitespace(t *testing.T) {
	ctrl := &fakeController{}

	assert.Equal(t, "App 'alpha.py' is now running.\n", execute(t, ctrl, "run\talpha.py"))
	assert.Equal(t, "App 'beta.py' has been closed.\n", execute(t, ctrl, "/close \t beta.py"))
	assert.Equal(t, []string{"run alpha.py", "close beta.py"}, ctrl.calls)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", fmt.Errorf("%w: gamma.py", app.ErrAppNotFound), "Error: App 'gamma.py' not found.\n"},
		{"no terminal", &launch.LaunchError{Strategy: "emulator", Cause: launch.ErrNoTerminalAvailable}, "Error: No supported terminal emulator found.\n"},
		{"spawn failed", errors.New("permission denied"), "Failed to launch app 'gamma.py': permission denied\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := &fakeController{runErr: tt.err}
			assert.Equal(t, tt.want, execute(t, ctrl, "run gamma.py"))
		})
	}
}

func TestMissingArguments(t *testing.T) {
	ctrl := &fakeController{}

	assert.Equal(t, "Usage: run [app_name.py]\n", execute(t, ctrl, "run"))
	assert.Equal(t, "Usage: close [app_name.py]\n", execute(t, ctrl, "/close   "))
	assert.Equal(t, "Usage: output [app_name.py]\n", execute(t, ctrl, "output"))
	assert.Empty(t, ctrl.calls)
}

func TestTaskManager(t *testing.T) {
	ctrl := &fakeController{}
	assert.Equal(t, "No apps are currently running.\n", execute(t, ctrl, "task_manager"))

	started := time.Date(2026, 5, 4, 13, 14, 15, 0, time.Local)
	ctrl.running = []types.ProcessInfo{
		{Name: "alpha.py", PID: 4242, StartedAt: started},
		{Name: "beta.py", PID: 4343, StartedAt: started, Exited: true},
	}

	out := execute(t, ctrl, "list")
	assert.Contains(t, out, "Running Apps:")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "alpha.py")
	assert.Contains(t, out, "4242")
	assert.Contains(t, out, "2026-05-04 13:14:15")
	assert.Contains(t, out, "exited")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)
}

func TestClose(t *testing.T) {
	ctrl := &fakeController{}
	assert.Equal(t, "App 'alpha.py' has been closed.\n", execute(t, ctrl, "close alpha.py"))

	ctrl.closeErr = fmt.Errorf("%w: beta.py", app.ErrNotRunning)
	assert.Equal(t, "Error: App 'beta.py' is not running.\n", execute(t, ctrl, "close beta.py"))

	ctrl.closeErr = &app.TerminationError{Name: "alpha.py", Cause: errors.New("no such process")}
	assert.Contains(t, execute(t, ctrl, "close alpha.py"), "Failed to close app 'alpha.py'")
}

func TestScan(t *testing.T) {
	ctrl := &fakeController{catalog: []types.Item{types.NewItem("/Modules/a.py")}}
	assert.Equal(t, "Found 1 apps in 'Modules'.\n", execute(t, ctrl, "scan"))

	ctrl.scanErr = fmt.Errorf("%w: Modules", discovery.ErrDirectoryNotFound)
	assert.Equal(t, "Error: Base directory 'Modules' does not exist.\n", execute(t, ctrl, "scan"))
}

func TestOutput(t *testing.T) {
	ctrl := &fakeController{output: []byte("hello")}
	assert.Equal(t, "hello\n", execute(t, ctrl, "output alpha.py"))

	ctrl.output = []byte{}
	assert.Equal(t, "No output from 'alpha.py' yet.\n", execute(t, ctrl, "output alpha.py"))

	ctrl.outErr = fmt.Errorf("%w: alpha.py", app.ErrNoOutput)
	assert.Contains(t, execute(t, ctrl, "output alpha.py"), "not captured")
}

func TestUnknownAndEmpty(t *testing.T) {
	ctrl := &fakeController{}

	assert.Equal(t, "Unknown command. Type 'help' for a list of commands.\n", execute(t, ctrl, "dance"))
	assert.Empty(t, execute(t, ctrl, "   "))
	assert.Contains(t, execute(t, ctrl, "/help"), "Available Commands:")
	assert.Empty(t, ctrl.calls)
}

func TestRunLoopStopsOnExit(t *testing.T) {
	ctrl := &fakeController{}
	in := strings.NewReader("run alpha.py\n\nexit\nrun beta.py\n")
	var out bytes.Buffer

	require.NoError(t, New(ctrl, in, &out, nil).Run(context.Background()))

	assert.Equal(t, []string{"run alpha.py"}, ctrl.calls)
	assert.Contains(t, out.String(), "Welcome to Mira OS!")
}

func TestRunLoopStopsOnEOF(t *testing.T) {
	ctrl := &fakeController{}
	in := strings.NewReader("run alpha.py\nclose alpha.py")
	var out bytes.Buffer

	require.NoError(t, New(ctrl, in, &out, nil).Run(context.Background()))

	assert.Equal(t, []string{"run alpha.py", "close alpha.py"}, ctrl.calls)
}

func TestRunLoopStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never returns stands in for an idle terminal
	blocked := &blockingReader{unblock: make(chan struct{})}
	defer close(blocked.unblock)
	var out bytes.Buffer

	done := make(chan error, 1)
	go func() { done <- New(&fakeController{}, blocked, &out, nil).Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("console did not stop after cancellation")
	}
}

type blockingReader struct {
	unblock chan struct{}
}

func (r *blockingReader) Read([]byte) (int, error) {
	<-r.unblock
	return 0, errors.New("closed")
}
