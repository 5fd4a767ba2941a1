//go:build unix

package launch

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/MiraOS/internal/shared/types"
)

// PTY runs the item headless under a pseudo-terminal and buffers its output
type PTY struct {
	interpreter string
	bufferSize  int
	logger      *logging.Logger
}

// NewPTY creates the headless PTY strategy
func NewPTY(interpreter string, bufferSize int, logger *logging.Logger) (*PTY, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PTY{interpreter: interpreter, bufferSize: bufferSize, logger: logger}, nil
}

func (p *PTY) Name() string {
	return "pty"
}

// Command builds the interpreter invocation for item
func (p *PTY) Command(item types.Item) *exec.Cmd {
	cmd := exec.Command(p.interpreter, item.Path)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	return cmd
}

// Launch starts the item on a new pty. pty.Start makes the child a session
// leader, so it already heads its own process group.
func (p *PTY) Launch(ctx context.Context, item types.Item) (types.ProcessHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LaunchError{Strategy: p.Name(), Item: item, Cause: err}
	}

	cmd := p.Command(item)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, &LaunchError{Strategy: p.Name(), Item: item, Cause: err}
	}

	output := NewBuffer(p.bufferSize)
	go p.drain(ptmx, output, item)

	return newProcess(cmd, output), nil
}

// drain copies pty output into the ring buffer until the child side closes
func (p *PTY) drain(ptmx *os.File, output *Buffer, item types.Item) {
	defer ptmx.Close()

	_, err := io.Copy(output, ptmx)
	// Linux reports EIO on the master once the child exits
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) && !isEIO(err) {
		p.logger.Debug("PTY read ended", zap.String("app", item.Name), zap.Error(err))
	}
}
