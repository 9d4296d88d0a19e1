package sysexec

import (
	"context"
	"io"
)

// MockExecutor is a configurable CommandExecutor for tests. Each func field
// overrides the corresponding method; unset fields return permissive defaults.
type MockExecutor struct {
	LookPathFunc     func(file string) (string, error)
	RunFunc          func(name string, args ...string) (string, error)
	RunStreamingFunc func(ctx context.Context, out io.Writer, name string, args ...string) error
	FileExistsFunc   func(path string) bool

	// Calls records every Run/RunContext/RunStreaming invocation.
	Calls [][]string
}

// LookPath implements CommandExecutor.
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

// Run implements CommandExecutor.
func (m *MockExecutor) Run(name string, args ...string) (string, error) {
	return m.RunContext(context.Background(), name, args...)
}

// RunContext implements CommandExecutor.
func (m *MockExecutor) RunContext(_ context.Context, name string, args ...string) (string, error) {
	m.record(name, args)
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return "", nil
}

// RunStreaming implements CommandExecutor.
func (m *MockExecutor) RunStreaming(ctx context.Context, out io.Writer, name string, args ...string) error {
	m.record(name, args)
	if m.RunStreamingFunc != nil {
		return m.RunStreamingFunc(ctx, out, name, args...)
	}
	return nil
}

// FileExists implements CommandExecutor.
func (m *MockExecutor) FileExists(path string) bool {
	if m.FileExistsFunc != nil {
		return m.FileExistsFunc(path)
	}
	return true
}

func (m *MockExecutor) record(name string, args []string) {
	call := append([]string{name}, args...)
	m.Calls = append(m.Calls, call)
}
