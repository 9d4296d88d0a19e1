package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/packages"
)

func TestNewRootCmd(t *testing.T) {
	rootCmd := newRootCmd()

	assert.Equal(t, "hydecli", rootCmd.Use)
	assert.Equal(t, "Arch Linux desktop setup and backup tool", rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCmdHelp(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"--help"})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	err := rootCmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "hydecli")
	assert.Contains(t, output, "backup")
	assert.Contains(t, output, "restore")
	assert.Contains(t, output, "install")
	assert.Contains(t, output, "fan")
	assert.Contains(t, output, "doctor")
}

func TestRootCmdVersion(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"--version"})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "hydecli version")
}

func TestMenuCmd(t *testing.T) {
	// The menu requires an interactive TTY; the forms it drives are
	// covered in pkg/tui.
	t.Skip("menu command requires interactive TTY")
}

func TestPackagesCmd(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"packages"})

	err := rootCmd.Execute()
	assert.NoError(t, err)
}

func TestSubcommandHelp(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		expects []string
	}{
		{
			name:    "backup help",
			args:    []string{"backup", "--help"},
			expects: []string{"timestamped", "tar.gz"},
		},
		{
			name:    "restore help",
			args:    []string{"restore", "--help"},
			expects: []string{"TIMESTAMP", "reassembled"},
		},
		{
			name:    "install help",
			args:    []string{"install", "--help"},
			expects: []string{"pacman", "AUR"},
		},
		{
			name:    "fan help",
			args:    []string{"fan", "--help"},
			expects: []string{"fan-performance", "ec_sys"},
		},
		{
			name:    "init help",
			args:    []string{"init", "--help"},
			expects: []string{"config.yaml", "data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd := newRootCmd()
			rootCmd.SetArgs(tt.args)

			var buf bytes.Buffer
			rootCmd.SetOut(&buf)

			err := rootCmd.Execute()
			require.NoError(t, err)

			output := buf.String()
			for _, expect := range tt.expects {
				assert.Contains(t, output, expect)
			}
		})
	}
}

func TestResolveSelection(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"install", "no-such-package"})
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	err := rootCmd.Execute()
	// Unknown packages are rejected before touching pacman
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown package")
}

func TestInstallCategorySlug(t *testing.T) {
	registry, err := packages.Load()
	require.NoError(t, err)

	// Short lowercase slugs resolve to the manifest's display categories
	selection, err := resolveSelection(registry, nil, "desktop", false)
	require.NoError(t, err)
	assert.Contains(t, selection, "hyprland")

	_, err = resolveSelection(registry, nil, "games", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}
