package launch

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/GriffinCanCode/MiraOS/internal/shared/types"
)

// AppleScript asks Terminal.app to run the item in a new window
type AppleScript struct {
	interpreter string
}

// NewAppleScript creates the osascript strategy
func NewAppleScript(interpreter string) *AppleScript {
	return &AppleScript{interpreter: interpreter}
}

func (a *AppleScript) Name() string {
	return "applescript"
}

// Script returns the AppleScript source that launches item
func (a *AppleScript) Script(item types.Item) string {
	shell := a.interpreter + " " + ShellQuote(item.Path)
	return fmt.Sprintf("tell application \"Terminal\"\n\tdo script \"%s\"\n\tactivate\nend tell", EscapeAppleScript(shell))
}

// Command builds the osascript invocation for item
func (a *AppleScript) Command(item types.Item) *exec.Cmd {
	return exec.Command("osascript", "-e", a.Script(item))
}

func (a *AppleScript) Launch(ctx context.Context, item types.Item) (types.ProcessHandle, error) {
	return spawn(ctx, a.Name(), item, a.Command(item))
}
