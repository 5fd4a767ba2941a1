package launch

import (
	"context"
	"os/exec"

	"github.com/GriffinCanCode/MiraOS/internal/shared/types"
)

// Emulator runs the item in the first installed terminal emulator
type Emulator struct {
	interpreter string
	terminals   []string
	lookPath    LookPathFunc
}

// DefaultTerminals is the emulator preference used when none is configured
var DefaultTerminals = []string{"gnome-terminal", "konsole", "xterm"}

// NewEmulator creates the terminal emulator strategy
func NewEmulator(interpreter string, terminals []string, lookPath LookPathFunc) *Emulator {
	if len(terminals) == 0 {
		terminals = DefaultTerminals
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return &Emulator{
		interpreter: interpreter,
		terminals:   append([]string(nil), terminals...),
		lookPath:    lookPath,
	}
}

func (e *Emulator) Name() string {
	return "emulator"
}

// Resolve returns the first preferred emulator present on the host.
// The probe runs on every call so emulators installed later are picked up.
func (e *Emulator) Resolve() (string, error) {
	for _, term := range e.terminals {
		if _, err := e.lookPath(term); err == nil {
			return term, nil
		}
	}
	return "", ErrNoTerminalAvailable
}

// Command builds the emulator invocation for item
func (e *Emulator) Command(item types.Item) (*exec.Cmd, error) {
	term, err := e.Resolve()
	if err != nil {
		return nil, err
	}
	if term == "gnome-terminal" {
		// gnome-terminal rejects -e with arguments; run through a sub-shell instead
		return exec.Command(term, "--", "bash", "-c", e.interpreter+" "+ShellQuote(item.Path)), nil
	}
	return exec.Command(term, "-e", e.interpreter, item.Path), nil
}

func (e *Emulator) Launch(ctx context.Context, item types.Item) (types.ProcessHandle, error) {
	cmd, err := e.Command(item)
	if err != nil {
		return nil, &LaunchError{Strategy: e.Name(), Item: item, Cause: err}
	}
	return spawn(ctx, e.Name(), item, cmd)
}
