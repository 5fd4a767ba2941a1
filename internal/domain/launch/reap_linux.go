package launch

import (
	"errors"

	"golang.org/x/sys/unix"
)

// awaitExit blocks until pid exits without reaping it. The zombie keeps the
// pid and its process group id reserved until cmd.Wait runs.
func awaitExit(pid int) bool {
	var info unix.Siginfo
	for {
		err := unix.Waitid(unix.P_PID, pid, &info, unix.WEXITED|unix.WNOWAIT, nil)
		if err == nil {
			return true
		}
		if !errors.Is(err, unix.EINTR) {
			return false
		}
	}
}
