//go:build unix

package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// detach puts the child in its own process group
func detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// terminate sends SIGTERM to the child's process group, falling back to the
// child itself when the group is gone
func terminate(p *os.Process) error {
	if err := unix.Kill(-p.Pid, unix.SIGTERM); err == nil {
		return nil
	}
	if err := p.Signal(unix.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return os.ErrProcessDone
		}
		return fmt.Errorf("signal pid %d: %w", p.Pid, err)
	}
	return nil
}

func isEIO(err error) bool {
	return errors.Is(err, unix.EIO)
}
