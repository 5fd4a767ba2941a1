package launch

import (
	"context"
	"os/exec"

	"github.com/GriffinCanCode/MiraOS/internal/shared/types"
)

// ConsoleHost opens a new console window through cmd's start builtin.
// The window stays open (/K) after the script ends.
type ConsoleHost struct {
	interpreter string
}

// NewConsoleHost creates the console host strategy
func NewConsoleHost(interpreter string) *ConsoleHost {
	return &ConsoleHost{interpreter: interpreter}
}

func (c *ConsoleHost) Name() string {
	return "console"
}

// Command builds the cmd invocation for item
func (c *ConsoleHost) Command(item types.Item) *exec.Cmd {
	return exec.Command("cmd", "/C", "start", "cmd", "/K", c.interpreter, item.Path)
}

func (c *ConsoleHost) Launch(ctx context.Context, item types.Item) (types.ProcessHandle, error) {
	return spawn(ctx, c.Name(), item, c.Command(item))
}
