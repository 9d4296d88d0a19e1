package fanservice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/sysexec"
)

const (
	// UnitName is the installed systemd unit.
	UnitName = "fan-performance.service"
	// DefaultUnitDir is where the unit file is installed.
	DefaultUnitDir = "/etc/systemd/system"
	// DefaultBinDir is where the control script is installed.
	DefaultBinDir = "/usr/local/bin"
	// ScriptName is the installed control script.
	ScriptName = "fan-performance.py"
)

var (
	// ErrNotRoot is returned when a service operation is attempted without root.
	ErrNotRoot = errors.New("fan service management requires root: re-run with sudo")
	// ErrSystemctlNotFound is returned when systemctl is not on PATH.
	ErrSystemctlNotFound = errors.New("systemctl not found: systemd is required")
	// ErrScriptMissing is returned when the control script to install is absent.
	ErrScriptMissing = errors.New("fan control script not found")
)

// Status describes the unit's current state.
type Status struct {
	Installed bool   // unit file present
	Enabled   bool   // systemctl is-enabled == enabled
	Active    bool   // systemctl is-active == active
	Detail    string // raw is-active output
}

// Service manages the fan-performance systemd unit.
type Service struct {
	executor sysexec.CommandExecutor
	unitDir  string
	binDir   string

	// euid is overridable in tests; defaults to os.Geteuid.
	euid func() int
}

// New creates a Service with the real command executor.
func New() *Service {
	return NewWithExecutor(&sysexec.RealExecutor{})
}

// NewWithExecutor creates a Service with a custom executor (for testing).
func NewWithExecutor(exec sysexec.CommandExecutor) *Service {
	return &Service{
		executor: exec,
		unitDir:  DefaultUnitDir,
		binDir:   DefaultBinDir,
		euid:     os.Geteuid,
	}
}

// SetDirs overrides the unit and script install directories (tests).
func (s *Service) SetDirs(unitDir, binDir string) {
	s.unitDir = unitDir
	s.binDir = binDir
}

// UnitPath returns the installed unit file path.
func (s *Service) UnitPath() string {
	return filepath.Join(s.unitDir, UnitName)
}

// ScriptPath returns the installed control script path.
func (s *Service) ScriptPath() string {
	return filepath.Join(s.binDir, ScriptName)
}

// RenderUnit substitutes the placeholders in the unit template.
func (s *Service) RenderUnit(pythonPath string) string {
	unit := strings.ReplaceAll(unitTemplate, "${PYTHON}", pythonPath)
	return strings.ReplaceAll(unit, "${SCRIPT_PATH}", s.ScriptPath())
}

// Install copies the control script from scriptSource, writes the unit file,
// reloads systemd, and enables the service immediately.
func (s *Service) Install(ctx context.Context, scriptSource string) error {
	if err := s.preflight(); err != nil {
		return err
	}

	script, err := os.ReadFile(scriptSource)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrScriptMissing, scriptSource)
		}
		return fmt.Errorf("failed to read control script: %w", err)
	}

	python, err := s.executor.LookPath("python3")
	if err != nil {
		python, err = s.executor.LookPath("python")
		if err != nil {
			return fmt.Errorf("python interpreter not found: %w", err)
		}
	}

	if err := os.MkdirAll(s.binDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.binDir, err)
	}
	if err := os.WriteFile(s.ScriptPath(), script, 0755); err != nil {
		return fmt.Errorf("failed to install control script: %w", err)
	}

	if err := os.MkdirAll(s.unitDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.unitDir, err)
	}
	if err := os.WriteFile(s.UnitPath(), []byte(s.RenderUnit(python)), 0644); err != nil {
		return fmt.Errorf("failed to write unit file: %w", err)
	}

	if _, err := s.executor.RunContext(ctx, "systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("daemon-reload failed: %w", err)
	}
	if _, err := s.executor.RunContext(ctx, "systemctl", "enable", "--now", UnitName); err != nil {
		return fmt.Errorf("failed to enable service: %w", err)
	}
	return nil
}

// Uninstall disables the service and removes the unit and script.
func (s *Service) Uninstall(ctx context.Context) error {
	if err := s.preflight(); err != nil {
		return err
	}

	// Best effort: the unit may already be disabled or gone
	_, _ = s.executor.RunContext(ctx, "systemctl", "disable", "--now", UnitName)

	for _, path := range []string{s.UnitPath(), s.ScriptPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	if _, err := s.executor.RunContext(ctx, "systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("daemon-reload failed: %w", err)
	}
	return nil
}

// Enable enables and starts the service.
func (s *Service) Enable(ctx context.Context) error {
	if err := s.preflight(); err != nil {
		return err
	}
	if _, err := s.executor.RunContext(ctx, "systemctl", "enable", "--now", UnitName); err != nil {
		return fmt.Errorf("failed to enable service: %w", err)
	}
	return nil
}

// Disable stops and disables the service.
func (s *Service) Disable(ctx context.Context) error {
	if err := s.preflight(); err != nil {
		return err
	}
	if _, err := s.executor.RunContext(ctx, "systemctl", "disable", "--now", UnitName); err != nil {
		return fmt.Errorf("failed to disable service: %w", err)
	}
	return nil
}

// Status reports the unit's install/enable/active state. Status does not
// require root.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	if _, err := s.executor.LookPath("systemctl"); err != nil {
		return nil, ErrSystemctlNotFound
	}

	st := &Status{
		Installed: s.executor.FileExists(s.UnitPath()),
	}

	// is-enabled/is-active exit nonzero for disabled/inactive; the output
	// still carries the state
	out, _ := s.executor.RunContext(ctx, "systemctl", "is-enabled", UnitName)
	st.Enabled = strings.TrimSpace(out) == "enabled"

	out, _ = s.executor.RunContext(ctx, "systemctl", "is-active", UnitName)
	st.Detail = strings.TrimSpace(out)
	st.Active = st.Detail == "active"

	return st, nil
}

func (s *Service) preflight() error {
	if _, err := s.executor.LookPath("systemctl"); err != nil {
		return ErrSystemctlNotFound
	}
	if s.euid() != 0 {
		return ErrNotRoot
	}
	return nil
}
