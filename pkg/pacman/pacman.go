// Package pacman drives the system package managers: pacman for official
// repositories and an AUR helper (yay or paru) for AUR builds.
package pacman

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/sysexec"
)

var (
	// ErrPacmanNotFound is returned when pacman is not on PATH.
	ErrPacmanNotFound = errors.New("pacman not found: this tool requires an Arch-based system")
	// ErrNoAURHelper is returned when neither yay nor paru is installed.
	ErrNoAURHelper = errors.New("no AUR helper found: install yay (or paru) first")
	// ErrAURAsRoot is returned when an AUR install is attempted as root.
	ErrAURAsRoot = errors.New("AUR packages must not be built as root")
)

// aurHelpers lists supported AUR helpers in preference order.
var aurHelpers = []string{"yay", "paru"}

// Manager runs package installations through the system package managers.
type Manager struct {
	executor sysexec.CommandExecutor
	out      io.Writer

	pacmanPath string
	aurHelper  string

	// euid is overridable in tests; defaults to os.Geteuid.
	euid func() int
}

// NewManager creates a Manager with the real command executor.
func NewManager() *Manager {
	return NewManagerWithExecutor(&sysexec.RealExecutor{})
}

// NewManagerWithExecutor creates a Manager with a custom executor (for testing).
func NewManagerWithExecutor(exec sysexec.CommandExecutor) *Manager {
	return &Manager{
		executor: exec,
		out:      os.Stdout,
		euid:     os.Geteuid,
	}
}

// SetOutput redirects streamed package-manager output.
func (m *Manager) SetOutput(w io.Writer) {
	m.out = w
}

// Detect locates pacman and the AUR helper. The AUR helper being absent is
// not an error here; InstallAUR reports it when AUR packages are requested.
func (m *Manager) Detect() error {
	path, err := m.executor.LookPath("pacman")
	if err != nil {
		return ErrPacmanNotFound
	}
	m.pacmanPath = path

	for _, helper := range aurHelpers {
		if _, err := m.executor.LookPath(helper); err == nil {
			m.aurHelper = helper
			break
		}
	}

	return nil
}

// AURHelper returns the detected AUR helper name, or "" if none.
func (m *Manager) AURHelper() string {
	return m.aurHelper
}

// Installed reports whether a package is installed, via `pacman -Qi`.
func (m *Manager) Installed(name string) bool {
	_, err := m.executor.Run("pacman", "-Qi", name)
	return err == nil
}

// Sync refreshes the package databases (`sudo pacman -Sy`).
func (m *Manager) Sync(ctx context.Context) error {
	return m.executor.RunStreaming(ctx, m.out, "sudo", "pacman", "-Sy", "--noconfirm")
}

// Result holds the outcome of an install run. Failures are per-package and
// do not abort the run.
type Result struct {
	Installed []string
	Skipped   []string // already installed
	Failed    map[string]error
}

func newResult() *Result {
	return &Result{Failed: make(map[string]error)}
}

// AllFailed returns true if nothing was installed or skipped.
func (r *Result) AllFailed() bool {
	return len(r.Installed) == 0 && len(r.Skipped) == 0 && len(r.Failed) > 0
}

// InstallOfficial installs official-repo packages one at a time via
// `sudo pacman -S --needed --noconfirm`. A failing package is recorded and
// the run continues with the rest.
func (m *Manager) InstallOfficial(ctx context.Context, names []string) (*Result, error) {
	if m.pacmanPath == "" {
		if err := m.Detect(); err != nil {
			return nil, err
		}
	}

	result := newResult()
	for _, name := range names {
		if m.Installed(name) {
			result.Skipped = append(result.Skipped, name)
			continue
		}
		err := m.executor.RunStreaming(ctx, m.out, "sudo", "pacman", "-S", "--needed", "--noconfirm", name)
		if err != nil {
			result.Failed[name] = err
			continue
		}
		result.Installed = append(result.Installed, name)
	}

	return result, nil
}

// InstallAUR installs AUR packages via the detected helper. AUR helpers
// refuse to run as root, so we check up front for a clearer error.
func (m *Manager) InstallAUR(ctx context.Context, names []string) (*Result, error) {
	if len(names) == 0 {
		return newResult(), nil
	}
	if m.euid() == 0 {
		return nil, ErrAURAsRoot
	}
	if m.aurHelper == "" {
		if err := m.Detect(); err != nil {
			return nil, err
		}
		if m.aurHelper == "" {
			return nil, ErrNoAURHelper
		}
	}

	result := newResult()
	for _, name := range names {
		if m.Installed(name) {
			result.Skipped = append(result.Skipped, name)
			continue
		}
		err := m.executor.RunStreaming(ctx, m.out, m.aurHelper, "-S", "--needed", "--noconfirm", name)
		if err != nil {
			result.Failed[name] = err
			continue
		}
		result.Installed = append(result.Installed, name)
	}

	return result, nil
}

// Summary returns a one-line human summary of an install run.
func (r *Result) Summary() string {
	parts := []string{
		fmt.Sprintf("%d installed", len(r.Installed)),
		fmt.Sprintf("%d already present", len(r.Skipped)),
	}
	if len(r.Failed) > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", len(r.Failed)))
	}
	return strings.Join(parts, ", ")
}
