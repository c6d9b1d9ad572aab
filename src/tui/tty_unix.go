//go:build !windows

package tui

import (
	"os"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// DefaultTtyDevice is the controlling terminal of the process
const DefaultTtyDevice = "/dev/tty"

var devPrefixes = [...]string{"/dev/pts/", "/dev/"}

// ttyname finds the device of the terminal stderr is attached to
func ttyname() string {
	var stderr syscall.Stat_t
	if syscall.Fstat(2, &stderr) != nil {
		return ""
	}

	for _, prefix := range devPrefixes {
		files, err := os.ReadDir(prefix)
		if err != nil {
			continue
		}

		for _, file := range files {
			info, err := file.Info()
			if err != nil {
				continue
			}
			if stat, ok := info.Sys().(*syscall.Stat_t); ok && stat.Rdev == stderr.Rdev {
				return prefix + file.Name()
			}
		}
	}
	return ""
}

// Terminal is the tty the dashboard draws on and reads input from
type Terminal struct {
	In  *os.File
	Out *os.File
}

// OpenTerminal opens the controlling terminal for reading and writing,
// so that the dashboard works even when stdin or stdout are redirected.
func OpenTerminal(device string) (*Terminal, error) {
	if device == "" {
		device = DefaultTtyDevice
	}
	in, err := openTty(device, syscall.O_RDONLY)
	if err != nil {
		return nil, err
	}
	out, err := openTty(device, syscall.O_WRONLY)
	if err != nil {
		in.Close()
		return nil, err
	}
	return &Terminal{In: in, Out: out}, nil
}

func openTty(device string, mode int) (*os.File, error) {
	file, err := os.OpenFile(device, mode, 0)
	if err == nil && term.IsTerminal(int(file.Fd())) {
		return file, nil
	}
	if file != nil {
		file.Close()
	}
	if tty := ttyname(); len(tty) > 0 {
		if file, err := os.OpenFile(tty, mode, 0); err == nil {
			return file, nil
		}
	}
	return nil, errors.Errorf("failed to open %s", device)
}

// Size returns the terminal dimensions, falling back to $COLUMNS and
// $LINES when the terminal cannot tell
func (t *Terminal) Size() (int, int) {
	width, height, err := term.GetSize(int(t.Out.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return getEnv("COLUMNS", defaultWidth), getEnv("LINES", defaultHeight)
	}
	return width, height
}

// Close closes both ends of the terminal
func (t *Terminal) Close() error {
	errIn := t.In.Close()
	if err := t.Out.Close(); err != nil {
		return err
	}
	return errIn
}

func getEnv(name string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(name)); err == nil && value > 0 {
		return value
	}
	return defaultValue
}
