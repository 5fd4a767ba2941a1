package launch

import (
	"context"
	"os"
	"os/exec"
	"sync"
)

// Process is the handle for a spawned child. A waiter goroutine reaps the
// child as soon as it exits so no zombie is left behind.
type Process struct {
	cmd    *exec.Cmd
	output *Buffer

	done    chan struct{}
	mu      sync.RWMutex // held for writing while the child is reaped
	waitErr error
}

func newProcess(cmd *exec.Cmd, output *Buffer) *Process {
	p := &Process{
		cmd:    cmd,
		output: output,
		done:   make(chan struct{}),
	}
	go p.wait()
	return p
}

// wait reaps the child. Where the exit can be observed first, the reap
// happens under the write lock so Terminate never signals a recycled pid.
func (p *Process) wait() {
	exited := awaitExit(p.cmd.Process.Pid)
	if exited {
		p.mu.Lock()
	}
	err := p.cmd.Wait()
	if !exited {
		p.mu.Lock()
	}

	p.waitErr = err
	close(p.done)
	p.mu.Unlock()
}

// PID returns the OS process id
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// Exited reports whether the child has been reaped
func (p *Process) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// ExitErr returns the error from Wait once the child has exited
func (p *Process) ExitErr() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.waitErr
}

// Terminate signals the child's process group. It returns os.ErrProcessDone
// when the child already exited.
func (p *Process) Terminate() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.Exited() {
		return os.ErrProcessDone
	}
	return terminate(p.cmd.Process)
}

// Wait blocks until the child exits or ctx is done
func (p *Process) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Output returns the captured output, or nil when output is not captured.
// A capturing process with no output yet returns an empty slice.
func (p *Process) Output() []byte {
	if p.output == nil {
		return nil
	}
	return p.output.Bytes()
}
