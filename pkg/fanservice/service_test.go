package fanservice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/sysexec"
)

// newTestService builds a Service rooted in temp dirs, pretending to be root.
func newTestService(t *testing.T, exec *sysexec.MockExecutor) *Service {
	t.Helper()
	s := NewWithExecutor(exec)
	s.SetDirs(t.TempDir(), t.TempDir())
	s.euid = func() int { return 0 }
	return s
}

// writeScript creates a fake fan control script and returns its path.
func writeScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fan-performance.py")
	require.NoError(t, os.WriteFile(path, []byte("#!/usr/bin/env python3\n"), 0644))
	return path
}

func TestRenderUnit(t *testing.T) {
	s := newTestService(t, &sysexec.MockExecutor{})
	unit := s.RenderUnit("/usr/bin/python3")

	assert.Contains(t, unit, "ExecStart=/usr/bin/python3 "+s.ScriptPath())
	assert.Contains(t, unit, "WantedBy=multi-user.target")
	assert.NotContains(t, unit, "${PYTHON}")
	assert.NotContains(t, unit, "${SCRIPT_PATH}")
}

func TestInstall(t *testing.T) {
	exec := &sysexec.MockExecutor{}
	s := newTestService(t, exec)

	err := s.Install(context.Background(), writeScript(t))
	require.NoError(t, err)

	// Script installed executable
	info, err := os.Stat(s.ScriptPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	// Unit rendered with the real paths
	unit, err := os.ReadFile(s.UnitPath())
	require.NoError(t, err)
	assert.Contains(t, string(unit), s.ScriptPath())

	// daemon-reload before enable --now
	require.Len(t, exec.Calls, 2)
	assert.Equal(t, []string{"systemctl", "daemon-reload"}, exec.Calls[0])
	assert.Equal(t, []string{"systemctl", "enable", "--now", UnitName}, exec.Calls[1])
}

func TestInstall_MissingScript(t *testing.T) {
	s := newTestService(t, &sysexec.MockExecutor{})
	err := s.Install(context.Background(), filepath.Join(t.TempDir(), "nope.py"))
	assert.ErrorIs(t, err, ErrScriptMissing)
}

func TestInstall_RequiresRoot(t *testing.T) {
	s := newTestService(t, &sysexec.MockExecutor{})
	s.euid = func() int { return 1000 }

	err := s.Install(context.Background(), writeScript(t))
	assert.ErrorIs(t, err, ErrNotRoot)
}

func TestInstall_NoSystemctl(t *testing.T) {
	exec := &sysexec.MockExecutor{
		LookPathFunc: func(file string) (string, error) {
			return "", errors.New("not found")
		},
	}
	s := newTestService(t, exec)

	err := s.Install(context.Background(), writeScript(t))
	assert.ErrorIs(t, err, ErrSystemctlNotFound)
}

func TestUninstall(t *testing.T) {
	exec := &sysexec.MockExecutor{}
	s := newTestService(t, exec)

	require.NoError(t, s.Install(context.Background(), writeScript(t)))
	require.NoError(t, s.Uninstall(context.Background()))

	assert.NoFileExists(t, s.UnitPath())
	assert.NoFileExists(t, s.ScriptPath())

	last := exec.Calls[len(exec.Calls)-1]
	assert.Equal(t, []string{"systemctl", "daemon-reload"}, last)
}

func TestUninstall_NotInstalledIsFine(t *testing.T) {
	s := newTestService(t, &sysexec.MockExecutor{})
	assert.NoError(t, s.Uninstall(context.Background()))
}

func TestStatus(t *testing.T) {
	exec := &sysexec.MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			switch args[0] {
			case "is-enabled":
				return "enabled\n", nil
			case "is-active":
				return "active\n", nil
			}
			return "", nil
		},
		FileExistsFunc: func(path string) bool { return true },
	}
	s := newTestService(t, exec)

	st, err := s.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Installed)
	assert.True(t, st.Enabled)
	assert.True(t, st.Active)
	assert.Equal(t, "active", st.Detail)
}

func TestStatus_Inactive(t *testing.T) {
	exec := &sysexec.MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			// systemctl exits nonzero and prints the state for inactive units
			switch args[0] {
			case "is-enabled":
				return "disabled\n", errors.New("exit status 1")
			case "is-active":
				return "inactive\n", errors.New("exit status 3")
			}
			return "", nil
		},
		FileExistsFunc: func(path string) bool { return false },
	}
	s := newTestService(t, exec)
	// Status should not require root
	s.euid = func() int { return 1000 }

	st, err := s.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Installed)
	assert.False(t, st.Enabled)
	assert.False(t, st.Active)
}

func TestEnableDisable(t *testing.T) {
	exec := &sysexec.MockExecutor{}
	s := newTestService(t, exec)

	require.NoError(t, s.Enable(context.Background()))
	require.NoError(t, s.Disable(context.Background()))

	assert.Equal(t, []string{"systemctl", "enable", "--now", UnitName}, exec.Calls[0])
	assert.Equal(t, []string{"systemctl", "disable", "--now", UnitName}, exec.Calls[1])
}
