package main

import "github.com/spf13/cobra"

// newMenuCmd creates the menu subcommand (main interactive entry point).
func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu (backup, restore, install, fan service)",
		Long: `Launch the interactive menu to back up or restore configuration,
install the desktop package set, or manage the fan-performance service.`,
		RunE: runMenu,
	}
}

// newBackupCmd creates the backup subcommand.
func newBackupCmd() *cobra.Command {
	var items []string
	var output string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up configuration into a timestamped folder",
		Long: `Archive the configured items into a new timestamped folder under the
data directory, one tar.gz per item. Archives over the size threshold are
split into numbered parts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackup(items, output)
		},
	}

	cmd.Flags().StringSliceVarP(&items, "items", "i", nil, "Items to back up (default: all)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Data directory override")
	return cmd
}

// newRestoreCmd creates the restore subcommand.
func newRestoreCmd() *cobra.Command {
	var items []string
	var target string

	cmd := &cobra.Command{
		Use:   "restore [TIMESTAMP]",
		Short: "Restore configuration from a backup folder",
		Long: `Extract archives from the named backup folder (latest when omitted)
into the home directory. Split archives are reassembled first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runRestore(name, items, target)
		},
	}

	cmd.Flags().StringSliceVarP(&items, "items", "i", nil, "Items to restore (default: all)")
	cmd.Flags().StringVar(&target, "target", "", "Extraction directory override (default: $HOME)")
	return cmd
}

// newBackupsCmd creates the backups subcommand.
func newBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List backup folders",
		RunE:  runBackups,
	}
}

// newInstallCmd creates the install subcommand.
func newInstallCmd() *cobra.Command {
	var opts installOptions

	cmd := &cobra.Command{
		Use:   "install [packages...]",
		Short: "Install the desktop package set",
		Long: `Install packages from the embedded manifest via pacman, and via the
AUR helper for AUR entries. With no arguments, installs the manifest
defaults. Failing packages are reported and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "Install only one category (desktop, terminal, theming, media, tools, system)")
	cmd.Flags().BoolVar(&opts.defaultsOnly, "defaults", false, "Install only manifest defaults (implied with no args)")
	cmd.Flags().BoolVar(&opts.aurOnly, "aur", false, "Install only the AUR entries of the selection")
	cmd.Flags().BoolVarP(&opts.sync, "sync", "y", false, "Refresh package databases first (pacman -Sy)")
	return cmd
}

// newPackagesCmd creates the packages subcommand.
func newPackagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List the package manifest",
		Long:  `List all packages in the embedded manifest, grouped by category.`,
		RunE:  runPackages,
	}
}

// newDoctorCmd creates the doctor subcommand.
func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check required tools and fix what's missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(fix)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Attempt to fix failed checks")
	return cmd
}

// newInitCmd creates the init subcommand.
func newInitCmd() *cobra.Command {
	var dataDir string
	var keep int

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the global configuration",
		Long:  `Write ~/.config/hydecli/config.yaml with the backup data directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(dataDir, keep)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Backup data directory (default: ~/hyde-backups)")
	cmd.Flags().IntVar(&keep, "keep", 0, "Backups to retain, 0 keeps all")
	return cmd
}
