//go:build !windows

package util

import (
	"context"
	"os"
	"os/exec"
)

// ExecCommand prepares the given command line to run with $SHELL. The
// process is killed when ctx is done.
func ExecCommand(ctx context.Context, command string) *exec.Cmd {
	shell := os.Getenv("SHELL")
	if len(shell) == 0 {
		shell = "sh"
	}
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdin = nil
	return cmd
}
