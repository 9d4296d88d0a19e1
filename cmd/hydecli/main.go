// Package main provides the hydecli CLI tool for Arch Linux desktop setup:
// package installation, configuration backup/restore, and fan-service
// management.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/backup"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/globalconfig"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for hydecli.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hydecli",
		Short: "Arch Linux desktop setup and backup tool",
		Long: `hydecli sets up and maintains a personal Arch Linux desktop.

It supports:
  - Installing the desktop package set via pacman and an AUR helper
  - Backing up configuration directories into timestamped tar.gz archives,
    splitting archives over the upload size cap into parts
  - Restoring backups, reassembling split archives first
  - Installing and managing the fan-performance systemd service`,
		Version: version,
	}

	rootCmd.AddCommand(
		newMenuCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newBackupsCmd(),
		newItemsCmd(),
		newInstallCmd(),
		newPackagesCmd(),
		newFanCmd(),
		newDoctorCmd(),
		newInitCmd(),
	)

	return rootCmd
}

// loadManager builds a backup manager from the global config.
func loadManager() (*globalconfig.Config, *backup.Manager, error) {
	cfg := globalconfig.LoadOrDefault()

	items, err := cfg.Items()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid backup items in config: %w", err)
	}

	manager, err := backup.NewManager(cfg.DataDir, items)
	if err != nil {
		return nil, nil, err
	}
	manager.SetChunkThreshold(cfg.ChunkThreshold())
	return cfg, manager, nil
}
