package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/MiraOS/internal/shared/types"
)

// DefaultCloseTimeout bounds how long GracefulStop waits for an exit
const DefaultCloseTimeout = 5 * time.Second

// RunFunc runs a command to completion
type RunFunc func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil && len(out) > 0 {
		return fmt.Errorf("%w: %s", err, out)
	}
	return err
}

// TreeKill force-kills the process and all of its descendants with taskkill
type TreeKill struct {
	run    RunFunc
	logger *logging.Logger
}

// NewTreeKill creates a taskkill based terminator
func NewTreeKill(logger *logging.Logger) *TreeKill {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TreeKill{run: runCommand, logger: logger}
}

// WithRunner replaces the command runner
func (t *TreeKill) WithRunner(run RunFunc) *TreeKill {
	t.run = run
	return t
}

func (t *TreeKill) Terminate(ctx context.Context, h types.ProcessHandle) error {
	pid := h.PID()
	if err := t.run(ctx, "taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)); err != nil {
		if h.Exited() {
			return nil
		}
		return fmt.Errorf("taskkill pid %d: %w", pid, err)
	}
	t.logger.Debug("Process tree killed", zap.Int("pid", pid))
	return nil
}

// GracefulStop asks the process to stop and waits a bounded time for it
type GracefulStop struct {
	timeout time.Duration
	logger  *logging.Logger
}

// NewGracefulStop creates a signal based terminator
func NewGracefulStop(timeout time.Duration, logger *logging.Logger) *GracefulStop {
	if timeout <= 0 {
		timeout = DefaultCloseTimeout
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &GracefulStop{timeout: timeout, logger: logger}
}

// Terminate never escalates to a kill. A process still alive after the
// timeout is logged and reported as closed.
func (g *GracefulStop) Terminate(ctx context.Context, h types.ProcessHandle) error {
	pid := h.PID()
	if err := h.Terminate(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return err
	}

	waitCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := h.Wait(waitCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			g.logger.Warn("Process did not exit before timeout",
				zap.Int("pid", pid),
				zap.Duration("timeout", g.timeout))
			return nil
		}
		return fmt.Errorf("wait pid %d: %w", pid, err)
	}
	return nil
}
