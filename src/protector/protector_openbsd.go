//go:build openbsd

package protector

import "golang.org/x/sys/unix"

// Protect restricts the process with pledge. Commands of the dashboard file
// need proc and exec; the log file needs wpath and cpath.
func Protect() {
	unix.PledgePromises("stdio rpath wpath cpath tty proc exec")
}
