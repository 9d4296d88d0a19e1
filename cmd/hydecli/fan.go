package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/fanservice"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/tui"
)

// newFanCmd creates the fan subcommand with its service-management actions.
func newFanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fan",
		Short: "Manage the fan-performance systemd service",
		Long: `Install, remove, or inspect the fan-performance service. The service
runs the fan control script at boot and needs the ec_sys kernel module
with write support (see 'hydecli doctor').`,
	}

	cmd.AddCommand(
		newFanInstallCmd(),
		newFanUninstallCmd(),
		newFanEnableCmd(),
		newFanDisableCmd(),
		newFanStatusCmd(),
	)
	return cmd
}

// defaultScriptSource is where a restored backup places the control script.
func defaultScriptSource() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return fanservice.ScriptName
	}
	return filepath.Join(home, ".local", "share", "fan-control", fanservice.ScriptName)
}

func newFanInstallCmd() *cobra.Command {
	var script string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install and start the service (requires root)",
		Long: `Copy the fan control script to /usr/local/bin, write the systemd unit,
and enable the service immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if script == "" {
				script = defaultScriptSource()
			}
			svc := fanservice.New()
			if err := svc.Install(context.Background(), script); err != nil {
				return err
			}
			tui.Success("Installed and started %s", fanservice.UnitName)
			return nil
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "Control script path (default: ~/.local/share/fan-control/"+fanservice.ScriptName+")")
	return cmd
}

func newFanUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Stop the service and remove the unit and script (requires root)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := fanservice.New()
			if err := svc.Uninstall(context.Background()); err != nil {
				return err
			}
			tui.Success("Removed %s", fanservice.UnitName)
			return nil
		},
	}
}

func newFanEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Enable and start the service (requires root)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := fanservice.New()
			if err := svc.Enable(context.Background()); err != nil {
				return err
			}
			tui.Success("Enabled %s", fanservice.UnitName)
			return nil
		},
	}
}

func newFanDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Stop and disable the service (requires root)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := fanservice.New()
			if err := svc.Disable(context.Background()); err != nil {
				return err
			}
			tui.Success("Disabled %s", fanservice.UnitName)
			return nil
		},
	}
}

func newFanStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the service is installed, enabled, and active",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFanStatus()
		},
	}
}

// runFanStatus prints the service state. It does not require root.
func runFanStatus() error {
	svc := fanservice.New()
	st, err := svc.Status(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", fanservice.UnitName)
	printState("Installed", st.Installed, "unit file present", "unit file missing")
	printState("Enabled", st.Enabled, "starts at boot", "not enabled")
	if st.Active {
		tui.Success("  Active:    running")
	} else {
		detail := st.Detail
		if detail == "" {
			detail = "inactive"
		}
		tui.Warning("  Active:    %s", detail)
	}

	if !st.Installed {
		fmt.Println()
		fmt.Println("Run 'sudo hydecli fan install' to install the service.")
	}
	return nil
}

func printState(label string, ok bool, yes, no string) {
	if ok {
		tui.Success("  %-10s %s", label+":", yes)
	} else {
		tui.Warning("  %-10s %s", label+":", no)
	}
}
