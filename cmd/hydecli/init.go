package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/globalconfig"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/tui"
)

// runInit writes the global configuration file.
func runInit(dataDir string, keep int) error {
	cfg, err := globalconfig.Load()
	switch {
	case err == nil:
		tui.Info("Updating existing configuration")
	case errors.Is(err, globalconfig.ErrNotInitialized):
		cfg = globalconfig.NewConfig()
	default:
		return err
	}

	if dataDir != "" {
		if err := tui.ValidateAbsolutePath(dataDir); err != nil {
			return err
		}
		cfg.DataDir = dataDir
	}
	if keep > 0 {
		cfg.KeepBackups = keep
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	path, err := globalconfig.GetConfigPath()
	if err != nil {
		return err
	}
	tui.Success("Configuration written to %s", path)
	fmt.Printf("  Data directory: %s\n", cfg.DataDir)
	if cfg.KeepBackups > 0 {
		fmt.Printf("  Retention:      keep %d backups\n", cfg.KeepBackups)
	} else {
		fmt.Printf("  Retention:      keep all backups\n")
	}
	return nil
}
