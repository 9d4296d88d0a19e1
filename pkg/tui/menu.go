package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/backup"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/packages"
)

// MenuAction is a top-level action in the interactive menu.
type MenuAction string

const (
	ActionBackup   MenuAction = "backup"
	ActionRestore  MenuAction = "restore"
	ActionInstall  MenuAction = "install"
	ActionFan      MenuAction = "fan"
	ActionDoctor   MenuAction = "doctor"
	ActionQuit     MenuAction = "quit"
)

// RunMainMenu shows the top-level menu and returns the chosen action.
func RunMainMenu() (MenuAction, error) {
	action := ActionBackup
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[MenuAction]().
				Title("hydecli").
				Description("What would you like to do?").
				Options(
					huh.NewOption("Backup configuration", ActionBackup),
					huh.NewOption("Restore configuration", ActionRestore),
					huh.NewOption("Install packages", ActionInstall),
					huh.NewOption("Fan service", ActionFan),
					huh.NewOption("Doctor", ActionDoctor),
					huh.NewOption("Quit", ActionQuit),
				).
				Value(&action),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return ActionQuit, fmt.Errorf("menu cancelled: %w", err)
	}
	return action, nil
}

// SelectItems shows a multi-select of backup items, all selected by default.
func SelectItems(items *backup.Items) ([]string, error) {
	options := make([]huh.Option[string], 0, len(items.All()))
	for _, item := range items.All() {
		label := item.Name
		if item.Description != "" {
			label = fmt.Sprintf("%s — %s", item.Name, item.Description)
		}
		options = append(options, huh.NewOption(label, item.Name).Selected(true))
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select items").
				Description("Choose what to include").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}
	return selected, nil
}

// SelectBackup shows a picker over existing backups, newest first.
func SelectBackup(backups []backup.Info) (string, error) {
	if len(backups) == 0 {
		return "", backup.ErrNoBackups
	}

	options := make([]huh.Option[string], 0, len(backups))
	for _, b := range backups {
		label := fmt.Sprintf("%s  (%d items, %s)",
			b.CreatedAt.Format(time.DateTime), b.Items, humanSize(b.Size))
		options = append(options, huh.NewOption(label, b.Name))
	}

	selected := backups[0].Name
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select backup").
				Description("Backups are listed newest first").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return selected, nil
}

// SelectPackages shows a multi-select over the package manifest grouped by
// category, with manifest defaults preselected.
func SelectPackages(registry *packages.Registry) ([]string, error) {
	var options []huh.Option[string]
	for _, category := range registry.Categories() {
		for _, pkg := range registry.ByCategory[category] {
			label := fmt.Sprintf("%s — %s", pkg.Name, pkg.Description)
			if pkg.IsAUR() {
				label += " (AUR)"
			}
			options = append(options, huh.NewOption(label, pkg.Name).Selected(pkg.Default))
		}
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select packages").
				Description("Defaults are preselected; AUR entries need an AUR helper").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}
	return selected, nil
}

// Confirm prompts a yes/no question.
func Confirm(title, description string) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return confirmed, nil
}

// humanSize renders a byte count with a binary unit.
func humanSize(n int64) string {
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
