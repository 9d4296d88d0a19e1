package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/backup"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/globalconfig"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/tui"
)

// newItemsCmd creates the items subcommand for managing the backup item set.
func newItemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage the set of backed-up items",
		Long: `List, add, or remove backup items. The built-in set covers the usual
configuration directories; extras are stored in the global config.`,
		RunE: runItemsList,
	}

	cmd.AddCommand(newItemsAddCmd(), newItemsRemoveCmd())
	return cmd
}

func newItemsAddCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add NAME SOURCE",
		Short: "Add a custom backup item",
		Long: `Add an item to the backup set. SOURCE is a path relative to the home
directory, e.g. '.config/nvim'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemsAdd(args[0], args[1], description)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Shown in the item picker")
	return cmd
}

func newItemsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a custom item or disable a built-in one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemsRemove(args[0])
		},
	}
}

// runItemsList prints the effective backup item set.
func runItemsList(_ *cobra.Command, _ []string) error {
	cfg := globalconfig.LoadOrDefault()
	items, err := cfg.Items()
	if err != nil {
		return err
	}

	fmt.Println("Backup items:")
	for _, item := range items.All() {
		fmt.Printf("  %-14s %s", item.Name, item.Source)
		if item.Description != "" {
			fmt.Printf("  (%s)", item.Description)
		}
		fmt.Println()
	}
	if len(cfg.DisabledItems) > 0 {
		fmt.Printf("\nDisabled: %v\n", cfg.DisabledItems)
	}
	return nil
}

// runItemsAdd appends an extra item to the global config.
func runItemsAdd(name, source, description string) error {
	if err := tui.ValidateItemName(name); err != nil {
		return err
	}
	if err := tui.ValidateRequired("source")(source); err != nil {
		return err
	}

	item := backup.Item{Name: name, Source: source, Description: description}
	if err := item.Validate(); err != nil {
		return err
	}

	cfg := globalconfig.LoadOrDefault()
	cfg.ExtraItems = append(cfg.ExtraItems, item)

	// Reject duplicates against the effective set before saving
	if _, err := cfg.Items(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	tui.Success("Added item %s (%s)", name, source)
	return nil
}

// runItemsRemove drops an extra item, or disables a built-in one.
func runItemsRemove(name string) error {
	cfg := globalconfig.LoadOrDefault()

	for i, item := range cfg.ExtraItems {
		if item.Name == name {
			cfg.ExtraItems = append(cfg.ExtraItems[:i], cfg.ExtraItems[i+1:]...)
			if err := cfg.Save(); err != nil {
				return err
			}
			tui.Success("Removed item %s", name)
			return nil
		}
	}

	for _, item := range backup.DefaultItems {
		if item.Name == name {
			for _, disabled := range cfg.DisabledItems {
				if disabled == name {
					tui.Warning("Item %s is already disabled", name)
					return nil
				}
			}
			cfg.DisabledItems = append(cfg.DisabledItems, name)
			if err := cfg.Save(); err != nil {
				return err
			}
			tui.Success("Disabled built-in item %s", name)
			return nil
		}
	}

	return fmt.Errorf("unknown item %q", name)
}
