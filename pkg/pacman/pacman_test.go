package pacman

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/sysexec"
)

func newTestManager(exec *sysexec.MockExecutor) *Manager {
	m := NewManagerWithExecutor(exec)
	m.SetOutput(io.Discard)
	m.euid = func() int { return 1000 }
	return m
}

func TestDetect_NoPacman(t *testing.T) {
	exec := &sysexec.MockExecutor{
		LookPathFunc: func(file string) (string, error) {
			return "", errors.New("not found")
		},
	}

	m := newTestManager(exec)
	err := m.Detect()
	assert.ErrorIs(t, err, ErrPacmanNotFound)
}

func TestDetect_PrefersYayOverParu(t *testing.T) {
	exec := &sysexec.MockExecutor{
		LookPathFunc: func(file string) (string, error) {
			return "/usr/bin/" + file, nil
		},
	}

	m := newTestManager(exec)
	require.NoError(t, m.Detect())
	assert.Equal(t, "yay", m.AURHelper())
}

func TestDetect_FallsBackToParu(t *testing.T) {
	exec := &sysexec.MockExecutor{
		LookPathFunc: func(file string) (string, error) {
			if file == "yay" {
				return "", errors.New("not found")
			}
			return "/usr/bin/" + file, nil
		},
	}

	m := newTestManager(exec)
	require.NoError(t, m.Detect())
	assert.Equal(t, "paru", m.AURHelper())
}

func TestInstallOfficial_SkipsInstalled(t *testing.T) {
	exec := &sysexec.MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			// pacman -Qi kitty -> installed, anything else -> not
			if len(args) >= 2 && args[0] == "-Qi" && args[1] == "kitty" {
				return "Name : kitty", nil
			}
			return "", errors.New("package not found")
		},
	}

	m := newTestManager(exec)
	result, err := m.InstallOfficial(context.Background(), []string{"kitty", "fish"})
	require.NoError(t, err)

	assert.Equal(t, []string{"fish"}, result.Installed)
	assert.Equal(t, []string{"kitty"}, result.Skipped)
	assert.Empty(t, result.Failed)

	// The actual install must go through sudo pacman -S --needed --noconfirm
	var installCalls [][]string
	for _, call := range exec.Calls {
		if call[0] == "sudo" {
			installCalls = append(installCalls, call)
		}
	}
	require.Len(t, installCalls, 1)
	assert.Equal(t, []string{"sudo", "pacman", "-S", "--needed", "--noconfirm", "fish"}, installCalls[0])
}

func TestInstallOfficial_ContinuesAfterFailure(t *testing.T) {
	exec := &sysexec.MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "", errors.New("not installed") // -Qi always misses
		},
		RunStreamingFunc: func(_ context.Context, _ io.Writer, name string, args ...string) error {
			if args[len(args)-1] == "broken-pkg" {
				return errors.New("target not found")
			}
			return nil
		},
	}

	m := newTestManager(exec)
	result, err := m.InstallOfficial(context.Background(), []string{"broken-pkg", "fish"})
	require.NoError(t, err)

	assert.Equal(t, []string{"fish"}, result.Installed)
	assert.Contains(t, result.Failed, "broken-pkg")
	assert.False(t, result.AllFailed())
}

func TestInstallAUR_RefusesRoot(t *testing.T) {
	m := newTestManager(&sysexec.MockExecutor{})
	m.euid = func() int { return 0 }

	_, err := m.InstallAUR(context.Background(), []string{"wlogout"})
	assert.ErrorIs(t, err, ErrAURAsRoot)
}

func TestInstallAUR_NoHelper(t *testing.T) {
	exec := &sysexec.MockExecutor{
		LookPathFunc: func(file string) (string, error) {
			if file == "pacman" {
				return "/usr/bin/pacman", nil
			}
			return "", errors.New("not found")
		},
	}

	m := newTestManager(exec)
	_, err := m.InstallAUR(context.Background(), []string{"wlogout"})
	assert.ErrorIs(t, err, ErrNoAURHelper)
}

func TestInstallAUR_EmptyListIsNoop(t *testing.T) {
	exec := &sysexec.MockExecutor{}
	m := newTestManager(exec)

	result, err := m.InstallAUR(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Installed)
	assert.Empty(t, exec.Calls)
}

func TestInstallAUR_UsesHelper(t *testing.T) {
	exec := &sysexec.MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "", errors.New("not installed")
		},
	}

	m := newTestManager(exec)
	result, err := m.InstallAUR(context.Background(), []string{"wlogout"})
	require.NoError(t, err)
	assert.Equal(t, []string{"wlogout"}, result.Installed)

	last := exec.Calls[len(exec.Calls)-1]
	assert.Equal(t, []string{"yay", "-S", "--needed", "--noconfirm", "wlogout"}, last)
}

func TestResult_Summary(t *testing.T) {
	r := newResult()
	r.Installed = []string{"a", "b"}
	r.Skipped = []string{"c"}
	assert.Equal(t, "2 installed, 1 already present", r.Summary())

	r.Failed["d"] = errors.New("boom")
	assert.Equal(t, "2 installed, 1 already present, 1 failed", r.Summary())
}
