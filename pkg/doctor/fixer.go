package doctor

import (
	"fmt"
	"os"
	"os/exec"
)

// fixCommands defines fix commands for each tool. Everything here targets
// Arch; the tool refuses to run elsewhere anyway. Sudo-tagged commands are
// written without a sudo prefix; the Fixer adds one when not running as root.
var fixCommands = map[string]*FixCommand{
	IDSudo: {
		Description: "Install sudo via pacman (requires root)",
		Command:     "pacman -S --noconfirm sudo",
		Sudo:        true,
	},
	IDGit: {
		Description: "Install git via pacman",
		Command:     "pacman -S --noconfirm git",
		Sudo:        true,
	},
	IDYay: {
		Description: "Bootstrap yay from the AUR",
		Command:     "git clone https://aur.archlinux.org/yay-bin.git /tmp/yay-bin && cd /tmp/yay-bin && makepkg -si --noconfirm",
		Sudo:        false,
	},
	IDPython: {
		Description: "Install python via pacman",
		Command:     "pacman -S --noconfirm python",
		Sudo:        true,
	},
	IDEcSys: {
		Description: "Load ec_sys with write support",
		Command:     "modprobe ec_sys write_support=1",
		Sudo:        true,
	},
}

// getFixCommand returns the fix command for a check ID, or nil.
func getFixCommand(checkID string) *FixCommand {
	return fixCommands[checkID]
}

// Fixer applies fix commands for failed checks.
type Fixer struct {
	// runner executes a shell command; overridable in tests.
	runner func(command string) error

	// euid is overridable in tests; defaults to os.Geteuid.
	euid func() int
}

// NewFixer creates a Fixer that runs fixes through the shell.
func NewFixer() *Fixer {
	return &Fixer{
		runner: func(command string) error {
			cmd := exec.Command("sh", "-c", command)
			output, err := cmd.CombinedOutput()
			if err != nil {
				return fmt.Errorf("fix command failed: %w\n%s", err, output)
			}
			return nil
		},
		euid: os.Geteuid,
	}
}

// CanFix returns true if the check has an associated fix command.
func (f *Fixer) CanFix(check Check) bool {
	return check.FixCommand != nil
}

// Fix runs the fix command for a check, escalating Sudo-tagged commands when
// not already root.
func (f *Fixer) Fix(check Check) error {
	if check.FixCommand == nil {
		return fmt.Errorf("no fix available for %s", check.ID)
	}
	command := check.FixCommand.Command
	if check.FixCommand.Sudo && f.euid() != 0 {
		command = "sudo " + command
	}
	return f.runner(command)
}

// FixAll runs fixes for all fixable failed checks in the groups, returning
// per-check errors. A failing fix does not stop the rest.
func (f *Fixer) FixAll(groups []CheckGroup) map[string]error {
	results := make(map[string]error)
	for _, group := range groups {
		for _, check := range group.Checks {
			if check.Status == StatusOK || check.FixCommand == nil {
				continue
			}
			results[check.ID] = f.Fix(check)
		}
	}
	return results
}
