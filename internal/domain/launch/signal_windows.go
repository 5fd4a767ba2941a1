//go:build windows

package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// detach starts the child in a new process group
func detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP
}

// terminate kills the child; windows has no SIGTERM for console programs
func terminate(p *os.Process) error {
	if err := p.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return os.ErrProcessDone
		}
		return fmt.Errorf("kill pid %d: %w", p.Pid, err)
	}
	return nil
}
