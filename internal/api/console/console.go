package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiraOS/internal/domain/app"
	"github.com/GriffinCanCode/MiraOS/internal/domain/discovery"
	"github.com/GriffinCanCode/MiraOS/internal/domain/launch"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/MiraOS/internal/shared/types"
)

// Controller is the subset of app.Controller the console drives
type Controller interface {
	Root() string
	Scan(ctx context.Context) ([]types.Item, error)
	Catalog() []types.Item
	Run(ctx context.Context, name string) (types.ProcessInfo, error)
	Running() []types.ProcessInfo
	Close(ctx context.Context, name string) error
	Output(name string) ([]byte, error)
}

const (
	prompt     = "\n> "
	timeLayout = "2006-01-02 15:04:05"
)

const helpText = `
Available Commands:
  browse                 - List all available apps
  scan                   - Rescan the apps directory
  run [app_name.py]      - Run an app by name
  task_manager           - Show all running apps with their start times
  close [app_name.py]    - Close a running app
  output [app_name.py]   - Show captured output of an app
  help                   - Show this help message
  exit                   - Leave Mira OS and close all running apps
`

// Console reads commands from in and writes responses to out
type Console struct {
	ctrl   Controller
	in     io.Reader
	out    io.Writer
	logger *logging.Logger
}

// New creates a console over the given streams
func New(ctrl Controller, in io.Reader, out io.Writer, logger *logging.Logger) *Console {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Console{ctrl: ctrl, in: in, out: out, logger: logger}
}

// Run processes commands until EOF, an exit command, or ctx is done
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	// Reads block on the terminal, so they happen off the command loop
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	c.println("Welcome to Mira OS! Type 'help' for a list of commands.")
	for {
		c.print(prompt)

		select {
		case <-ctx.Done():
			c.println("")
			return nil
		case line, ok := <-lines:
			if !ok {
				c.println("")
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			if !c.Execute(ctx, line) {
				return nil
			}
		}
	}
}

// Execute runs a single command line and reports whether the session continues
func (c *Console) Execute(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}

	cmd, arg := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		cmd, arg = line[:i], strings.TrimSpace(line[i:])
	}
	cmd = strings.TrimPrefix(cmd, "/")

	c.logger.Debug("Console command", zap.String("command", cmd), zap.String("app", arg))

	switch cmd {
	case "browse":
		c.browse()
	case "scan":
		c.scan(ctx)
	case "run":
		if arg == "" {
			c.println("Usage: run [app_name.py]")
			return true
		}
		c.run(ctx, arg)
	case "task_manager", "list":
		c.taskManager()
	case "close":
		if arg == "" {
			c.println("Usage: close [app_name.py]")
			return true
		}
		c.closeApp(ctx, arg)
	case "output":
		if arg == "" {
			c.println("Usage: output [app_name.py]")
			return true
		}
		c.output(arg)
	case "help":
		c.print(helpText)
	case "exit", "quit":
		return false
	default:
		c.println("Unknown command. Type 'help' for a list of commands.")
	}
	return true
}

func (c *Console) browse() {
	items := c.ctrl.Catalog()
	if len(items) == 0 {
		c.println("No apps found.")
		return
	}
	c.println("\nAvailable Apps:")
	for _, item := range items {
		c.printf("  - %s\n", item.Name)
	}
}

func (c *Console) scan(ctx context.Context) {
	items, err := c.ctrl.Scan(ctx)
	if err != nil {
		if errors.Is(err, discovery.ErrDirectoryNotFound) {
			c.printf("Error: Base directory '%s' does not exist.\n", c.ctrl.Root())
			return
		}
		c.printf("Error: scan failed: %v\n", err)
		return
	}
	c.printf("Found %d apps in '%s'.\n", len(items), c.ctrl.Root())
}

func (c *Console) run(ctx context.Context, name string) {
	info, err := c.ctrl.Run(ctx, name)
	switch {
	case err == nil:
		c.printf("App '%s' is now running.\n", info.Name)
	case errors.Is(err, app.ErrAppNotFound):
		c.printf("Error: App '%s' not found.\n", name)
	case errors.Is(err, launch.ErrNoTerminalAvailable):
		c.println("Error: No supported terminal emulator found.")
	default:
		c.printf("Failed to launch app '%s': %v\n", name, err)
	}
}

func (c *Console) taskManager() {
	running := c.ctrl.Running()
	if len(running) == 0 {
		c.println("No apps are currently running.")
		return
	}

	c.println("\nRunning Apps:")
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tPID\tSTARTED\tSTATUS")
	for _, info := range running {
		status := "running"
		if info.Exited {
			status = "exited"
		}
		fmt.Fprintf(w, "  %s\t%d\t%s\t%s\n",
			info.Name, info.PID, info.StartedAt.In(time.Local).Format(timeLayout), status)
	}
	w.Flush()
}

func (c *Console) closeApp(ctx context.Context, name string) {
	err := c.ctrl.Close(ctx, name)
	switch {
	case err == nil:
		c.printf("App '%s' has been closed.\n", name)
	case errors.Is(err, app.ErrNotRunning):
		c.printf("Error: App '%s' is not running.\n", name)
	default:
		c.printf("Failed to close app '%s': %v\n", name, err)
	}
}

func (c *Console) output(name string) {
	out, err := c.ctrl.Output(name)
	switch {
	case err == nil:
		if len(out) == 0 {
			c.printf("No output from '%s' yet.\n", name)
			return
		}
		c.printf("%s", out)
		if out[len(out)-1] != '\n' {
			c.println("")
		}
	case errors.Is(err, app.ErrNotRunning):
		c.printf("Error: App '%s' is not running.\n", name)
	case errors.Is(err, app.ErrNoOutput):
		c.printf("Error: Output of '%s' is not captured. Use the pty strategy to capture output.\n", name)
	default:
		c.printf("Error: %v\n", err)
	}
}

func (c *Console) print(s string) {
	fmt.Fprint(c.out, s)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
