package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/backup"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/fanservice"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/packages"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/pacman"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/tui"
)

// runMenu loops the interactive menu until the user quits.
func runMenu(_ *cobra.Command, _ []string) error {
	for {
		action, err := tui.RunMainMenu()
		if err != nil {
			// Ctrl+C on the menu is a normal exit
			return nil
		}

		switch action {
		case tui.ActionBackup:
			err = menuBackup()
		case tui.ActionRestore:
			err = menuRestore()
		case tui.ActionInstall:
			err = menuInstall()
		case tui.ActionFan:
			err = menuFan()
		case tui.ActionDoctor:
			err = runDoctor(false)
		case tui.ActionQuit:
			return nil
		}

		if err != nil {
			tui.Error("%v", err)
		}
		fmt.Println()
	}
}

// menuBackup prompts for items and runs a backup.
func menuBackup() error {
	cfg, _, err := loadManager()
	if err != nil {
		return err
	}

	items, err := cfg.Items()
	if err != nil {
		return err
	}
	selected, err := tui.SelectItems(items)
	if err != nil || len(selected) == 0 {
		return err
	}

	return runBackup(selected, "")
}

// menuRestore prompts for a backup folder and runs a restore.
func menuRestore() error {
	_, manager, err := loadManager()
	if err != nil {
		return err
	}

	backups, err := manager.List()
	if err != nil {
		return err
	}
	name, err := tui.SelectBackup(backups)
	if err != nil {
		if errors.Is(err, backup.ErrNoBackups) {
			tui.Warning("No backups found in %s", manager.DataDir())
			return nil
		}
		return err
	}

	ok, err := tui.Confirm("Restore "+name+"?",
		"Existing files under $HOME will be overwritten.")
	if err != nil || !ok {
		return err
	}

	return runRestore(name, nil, "")
}

// menuInstall prompts for packages and installs them.
func menuInstall() error {
	registry, err := packages.Load()
	if err != nil {
		return err
	}

	selected, err := tui.SelectPackages(registry)
	if err != nil || len(selected) == 0 {
		return err
	}

	manager := pacman.NewManager()
	if err := manager.Detect(); err != nil {
		return err
	}
	return installSelection(context.Background(), manager, registry, selected)
}

// menuFan shows the service status and offers install/enable/disable.
func menuFan() error {
	if err := runFanStatus(); err != nil {
		return err
	}
	fmt.Println()

	svc := fanservice.New()
	st, err := svc.Status(context.Background())
	if err != nil {
		return err
	}

	if !st.Installed {
		ok, err := tui.Confirm("Install fan-performance service?",
			"Requires root; the control script must be present (restore a backup first).")
		if err != nil || !ok {
			return err
		}
		if err := svc.Install(context.Background(), defaultScriptSource()); err != nil {
			return err
		}
		tui.Success("Installed and started %s", fanservice.UnitName)
		return nil
	}

	if st.Active {
		ok, err := tui.Confirm("Disable fan-performance service?", "The service is currently running.")
		if err != nil || !ok {
			return err
		}
		if err := svc.Disable(context.Background()); err != nil {
			return err
		}
		tui.Success("Disabled %s", fanservice.UnitName)
		return nil
	}

	ok, err := tui.Confirm("Enable fan-performance service?", "The service is installed but not running.")
	if err != nil || !ok {
		return err
	}
	if err := svc.Enable(context.Background()); err != nil {
		return err
	}
	tui.Success("Enabled %s", fanservice.UnitName)
	return nil
}
