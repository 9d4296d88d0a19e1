package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/packages"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/pacman"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/tui"
)

// installOptions holds the install command flags.
type installOptions struct {
	category     string
	defaultsOnly bool
	aurOnly      bool
	sync         bool
}

// runInstall installs the selected packages through pacman and the AUR helper.
func runInstall(names []string, opts installOptions) error {
	registry, err := packages.Load()
	if err != nil {
		return err
	}

	selection, err := resolveSelection(registry, names, opts.category, opts.defaultsOnly)
	if err != nil {
		return err
	}
	if opts.aurOnly {
		selection = registry.AUR(selection)
	}
	if len(selection) == 0 {
		fmt.Println("Nothing to install.")
		return nil
	}

	manager := pacman.NewManager()
	if err := manager.Detect(); err != nil {
		return err
	}

	ctx := context.Background()
	if opts.sync {
		tui.Info("Refreshing package databases...")
		if err := manager.Sync(ctx); err != nil {
			return err
		}
	}

	return installSelection(ctx, manager, registry, selection)
}

// resolveSelection maps the install command flags to a package list.
func resolveSelection(registry *packages.Registry, names []string, category string, defaultsOnly bool) ([]string, error) {
	if len(names) > 0 {
		for _, name := range names {
			if registry.Get(name) == nil {
				return nil, fmt.Errorf("unknown package %q (see 'hydecli packages')", name)
			}
		}
		return names, nil
	}

	if category != "" {
		cat, ok := packages.ParseCategory(category)
		if !ok {
			return nil, fmt.Errorf("unknown category %q (one of: %s)",
				category, strings.Join(packages.CategorySlugs(), ", "))
		}
		var result []string
		for _, pkg := range registry.ByCategory[cat] {
			if !defaultsOnly || pkg.Default {
				result = append(result, pkg.Name)
			}
		}
		return result, nil
	}

	return registry.Defaults(), nil
}

// installSelection runs the official and AUR installs and prints a summary.
func installSelection(ctx context.Context, manager *pacman.Manager, registry *packages.Registry, selection []string) error {
	official := registry.Official(selection)
	aur := registry.AUR(selection)

	if len(official) > 0 {
		tui.Info("Installing %d official package(s) via pacman...", len(official))
		result, err := manager.InstallOfficial(ctx, official)
		if err != nil {
			return err
		}
		printInstallResult("pacman", result)
		if result.AllFailed() {
			return fmt.Errorf("all official package installs failed")
		}
	}

	if len(aur) > 0 {
		tui.Info("Installing %d AUR package(s) via %s...", len(aur), manager.AURHelper())
		result, err := manager.InstallAUR(ctx, aur)
		if err != nil {
			return err
		}
		printInstallResult(manager.AURHelper(), result)
		if result.AllFailed() {
			return fmt.Errorf("all AUR package installs failed")
		}
	}

	return nil
}

// printInstallResult prints the outcome of one install run.
func printInstallResult(tool string, result *pacman.Result) {
	tui.Success("%s: %s", tool, result.Summary())
	for name, err := range result.Failed {
		tui.Error("  %s: %v", name, err)
	}
}

// runPackages lists the package manifest grouped by category.
func runPackages(_ *cobra.Command, _ []string) error {
	registry, err := packages.Load()
	if err != nil {
		return err
	}

	fmt.Printf("Found %d packages:\n\n", len(registry.Packages))

	for _, category := range registry.Categories() {
		fmt.Printf("%s:\n", category)
		for _, pkg := range registry.ByCategory[category] {
			desc := pkg.Description
			if desc == "" {
				desc = "(no description)"
			}
			marker := " "
			if pkg.Default {
				marker = "*"
			}
			repo := ""
			if pkg.IsAUR() {
				repo = " [AUR]"
			}
			fmt.Printf("  %s %s%s: %s\n", marker, pkg.Name, repo, desc)
		}
		fmt.Println()
	}
	fmt.Println("* installed by default")

	return nil
}
