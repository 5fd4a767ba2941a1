//go:build !linux

package launch

// awaitExit reports false: the child is reaped as soon as it exits.
// TODO: use kqueue EVFILT_PROC on darwin and the BSDs to observe exit before reaping.
func awaitExit(int) bool { return false }
