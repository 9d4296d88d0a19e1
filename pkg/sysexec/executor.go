// Package sysexec provides command execution with an interface seam so that
// packages shelling out to pacman, systemctl, and friends can be tested with
// a mock executor.
package sysexec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// CommandExecutor is an interface for executing commands, allowing for testing.
type CommandExecutor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) (string, error)
	RunContext(ctx context.Context, name string, args ...string) (string, error)
	// RunStreaming runs a command with stdout/stderr streamed to the given
	// writer. Used for long package-manager runs where the user should see
	// live output.
	RunStreaming(ctx context.Context, out io.Writer, name string, args ...string) error
	FileExists(path string) bool
}

// RealExecutor is the default command executor that uses the real system.
type RealExecutor struct{}

// LookPath finds the path to an executable.
func (e *RealExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *RealExecutor) Run(name string, args ...string) (string, error) {
	return e.RunContext(context.Background(), name, args...)
}

// RunContext executes a command with a context and returns its output.
func (e *RealExecutor) RunContext(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		// Some tools write diagnostics to stderr only
		if stderr.Len() > 0 {
			return stderr.String(), fmt.Errorf("%s failed: %s", name, strings.TrimSpace(stderr.String()))
		}
		return stdout.String(), fmt.Errorf("%s failed: %w", name, err)
	}
	output := stdout.String()
	if output == "" {
		output = stderr.String()
	}
	return output, nil
}

// RunStreaming runs a command and streams combined output to out.
func (e *RealExecutor) RunStreaming(ctx context.Context, out io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// FileExists checks if a file exists.
func (e *RealExecutor) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
