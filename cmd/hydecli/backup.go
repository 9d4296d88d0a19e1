package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/backup"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/taskui"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/tui"
)

// runBackup archives the selected items into a new timestamped folder.
func runBackup(items []string, output string) error {
	cfg, manager, err := loadManager()
	if err != nil {
		return err
	}
	if output != "" {
		mgrItems, err := cfg.Items()
		if err != nil {
			return err
		}
		manager, err = backup.NewManager(output, mgrItems)
		if err != nil {
			return err
		}
		manager.SetChunkThreshold(cfg.ChunkThreshold())
	}

	var manifest *backup.Manifest
	var folder string
	task := func(ctx context.Context, progress backup.ProgressCallback) error {
		var taskErr error
		manifest, folder, taskErr = manager.Backup(ctx, items, progress)
		return taskErr
	}

	if err := taskui.Run("Backing up configuration", task); err != nil {
		if errors.Is(err, context.Canceled) {
			tui.Warning("Backup cancelled.")
			return nil
		}
		return err
	}

	printBackupSummary(manifest, folder)
	if manifest != nil && manifest.AllFailed() {
		return fmt.Errorf("all backup items failed")
	}

	// Retention applies after a successful backup
	if cfg.KeepBackups > 0 {
		removed, err := manager.Prune(cfg.KeepBackups)
		if err != nil {
			tui.Warning("Pruning failed: %v", err)
		} else if len(removed) > 0 {
			tui.Info("Pruned %d old backup(s)", len(removed))
		}
	}
	return nil
}

// printBackupSummary prints the per-item results of a backup run.
func printBackupSummary(manifest *backup.Manifest, folder string) {
	if manifest == nil {
		return
	}
	fmt.Println()
	tui.Success("Backup complete: %s", folder)
	fmt.Println()

	for _, item := range manifest.Items {
		switch item.Status {
		case backup.ItemArchived:
			line := fmt.Sprintf("  %-14s %s", item.Name, humanBytes(item.Size))
			if item.Parts > 0 {
				line += fmt.Sprintf(" (%d parts)", item.Parts)
			}
			fmt.Println(line)
		case backup.ItemSkipped:
			fmt.Println(tui.SubtitleStyle.Render(fmt.Sprintf("  %-14s skipped: %s", item.Name, item.Message)))
		case backup.ItemFailed:
			tui.Error("  %-14s failed: %s", item.Name, item.Message)
		}
	}
}

// runRestore extracts a backup folder into the home directory.
func runRestore(name string, items []string, target string) error {
	_, manager, err := loadManager()
	if err != nil {
		return err
	}
	if target != "" {
		manager.SetHome(target)
	}

	if name == "" {
		latest, err := manager.Latest()
		if err != nil {
			return err
		}
		name = latest.Name
		tui.Info("Restoring latest backup: %s", name)
	}

	task := func(ctx context.Context, progress backup.ProgressCallback) error {
		return manager.Restore(ctx, name, items, progress)
	}
	if err := taskui.Run("Restoring configuration", task); err != nil {
		if errors.Is(err, context.Canceled) {
			tui.Warning("Restore cancelled.")
			return nil
		}
		return err
	}

	tui.Success("Restore complete.")
	return nil
}

// runBackups lists backup folders newest first.
func runBackups(_ *cobra.Command, _ []string) error {
	_, manager, err := loadManager()
	if err != nil {
		return err
	}

	backups, err := manager.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Printf("No backups found in %s\n", manager.DataDir())
		return nil
	}

	fmt.Printf("Backups in %s:\n\n", manager.DataDir())
	for _, b := range backups {
		fmt.Printf("  %s  %s  %d item(s), %s\n",
			b.Name, b.CreatedAt.Format(time.DateTime), b.Items, humanBytes(b.Size))
	}
	return nil
}

// humanBytes renders a byte count with a binary unit.
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
