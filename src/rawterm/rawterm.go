//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

// Package rawterm switches a terminal into non-canonical input mode where
// every byte is delivered as soon as it arrives.
package rawterm

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// State holds the terminal attributes to restore
type State struct {
	termios unix.Termios
}

func getTermios(fd int) (*unix.Termios, error) {
	return unix.IoctlGetTermios(fd, ioctlGetTermios)
}

func setTermios(fd int, t *unix.Termios) error {
	return unix.IoctlSetTermios(fd, ioctlSetTermiosFlush, t)
}

// IsTerminal reports whether fd refers to a terminal
func IsTerminal(fd int) bool {
	_, err := getTermios(fd)
	return err == nil
}

// MakeRaw disables echo and line buffering on fd. Reads return immediately,
// with or without data (VMIN=0, VTIME=0). Signal generating characters are
// left alone so that CTRL-C still raises SIGINT.
func MakeRaw(fd int) (*State, error) {
	termios, err := getTermios(fd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read terminal attributes")
	}
	state := &State{termios: *termios}

	termios.Lflag &^= unix.ECHO | unix.ICANON
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = 0
	if err := setTermios(fd, termios); err != nil {
		return nil, errors.Wrap(err, "failed to set terminal attributes")
	}
	return state, nil
}

// Restore puts the terminal back into the state saved by MakeRaw
func Restore(fd int, state *State) error {
	if state == nil {
		return nil
	}
	return errors.Wrap(setTermios(fd, &state.termios), "failed to restore terminal attributes")
}
