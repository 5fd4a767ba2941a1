package launch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/MiraOS/internal/shared/types"
)

var (
	// ErrUnsupportedPlatform is returned by ForHost for an unknown host family
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoTerminalAvailable is returned when none of the preferred emulators is installed
	ErrNoTerminalAvailable = errors.New("no terminal emulator available")
)

// Strategy spawns an item so the operator can interact with it
type Strategy interface {
	Name() string
	Launch(ctx context.Context, item types.Item) (types.ProcessHandle, error)
}

// Terminator stops a process previously returned by a Strategy
type Terminator interface {
	Terminate(ctx context.Context, h types.ProcessHandle) error
}

// LaunchError reports a failed spawn
type LaunchError struct {
	Strategy string
	Item     types.Item
	Cause    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s via %s: %v", e.Item.Name, e.Strategy, e.Cause)
}

func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// LookPathFunc resolves an executable name, like exec.LookPath
type LookPathFunc func(file string) (string, error)

// Options configures strategy selection
type Options struct {
	Strategy     string
	Interpreter  string
	Terminals    []string
	CloseTimeout time.Duration
	OutputBuffer int
	LookPath     LookPathFunc
	Logger       *logging.Logger
}

// FromConfig builds Options from the launch section of the config
func FromConfig(cfg config.LaunchConfig, logger *logging.Logger) Options {
	return Options{
		Strategy:     cfg.Strategy,
		Interpreter:  cfg.Interpreter,
		Terminals:    cfg.Terminals,
		CloseTimeout: cfg.CloseTimeout,
		OutputBuffer: cfg.OutputBuffer,
		Logger:       logger,
	}
}

// ForHost selects the strategy and terminator for a host family (runtime.GOOS).
// An explicit Strategy in opts overrides the host default.
func ForHost(goos string, opts Options) (Strategy, Terminator, error) {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}
	if opts.Interpreter == "" {
		opts.Interpreter = "python"
	}

	name := opts.Strategy
	if name == "" || name == config.StrategyAuto {
		switch goos {
		case "windows":
			name = config.StrategyConsole
		case "darwin":
			name = config.StrategyAppleScript
		case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
			name = config.StrategyEmulator
		default:
			return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
		}
	}

	var strategy Strategy
	switch name {
	case config.StrategyConsole:
		strategy = NewConsoleHost(opts.Interpreter)
	case config.StrategyAppleScript:
		strategy = NewAppleScript(opts.Interpreter)
	case config.StrategyEmulator:
		strategy = NewEmulator(opts.Interpreter, opts.Terminals, opts.LookPath)
	case config.StrategyPTY:
		pty, err := NewPTY(opts.Interpreter, opts.OutputBuffer, opts.Logger)
		if err != nil {
			return nil, nil, err
		}
		strategy = pty
	default:
		return nil, nil, fmt.Errorf("unknown strategy %q", name)
	}

	var terminator Terminator
	if goos == "windows" {
		terminator = NewTreeKill(opts.Logger)
	} else {
		terminator = NewGracefulStop(opts.CloseTimeout, opts.Logger)
	}

	opts.Logger.Debug("Launch strategy selected",
		zap.String("os", goos),
		zap.String("strategy", strategy.Name()))
	return strategy, terminator, nil
}

// spawn starts cmd detached from the launcher and wraps it in a Process.
func spawn(ctx context.Context, strategy string, item types.Item, cmd *exec.Cmd) (*Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LaunchError{Strategy: strategy, Item: item, Cause: err}
	}
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Strategy: strategy, Item: item, Cause: err}
	}
	return newProcess(cmd, nil), nil
}
