package doctor

import (
	"os"
	"regexp"
	"strings"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/sysexec"
)

// versionRe extracts a semantic-looking version from tool output.
var versionRe = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`)

// checkTool checks if a tool is installed and gets its version.
func checkTool(exec sysexec.CommandExecutor, id, name, desc string, versionArgs []string, fixCmd *FixCommand) Check {
	check := Check{
		ID:          id,
		Name:        name,
		Description: desc,
		FixCommand:  fixCmd,
	}

	path, err := exec.LookPath(id)
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	output, err := exec.Run(path, versionArgs...)
	if err != nil {
		// Tool exists but version check failed - still consider it OK
		check.Status = StatusOK
		check.Message = "installed (version unknown)"
		return check
	}

	check.Status = StatusOK
	if m := versionRe.FindStringSubmatch(output); len(m) > 1 {
		check.Message = m[1]
	} else {
		check.Message = "installed"
	}
	return check
}

// CheckPacman verifies pacman is available.
func CheckPacman(exec sysexec.CommandExecutor) Check {
	return checkTool(exec, IDPacman, "pacman", "System package manager",
		[]string{"--version"}, nil)
}

// CheckSudo verifies sudo is available.
func CheckSudo(exec sysexec.CommandExecutor) Check {
	return checkTool(exec, IDSudo, "sudo", "Privilege escalation for installs and service management",
		[]string{"--version"}, getFixCommand(IDSudo))
}

// CheckSystemctl verifies systemctl is available.
func CheckSystemctl(exec sysexec.CommandExecutor) Check {
	return checkTool(exec, IDSystemctl, "systemctl", "Manages the fan-performance service",
		[]string{"--version"}, nil)
}

// CheckGit verifies git is available (needed to bootstrap an AUR helper).
func CheckGit(exec sysexec.CommandExecutor) Check {
	return checkTool(exec, IDGit, "git", "Required to clone AUR package builds",
		[]string{"--version"}, getFixCommand(IDGit))
}

// CheckYay verifies an AUR helper is available. paru counts as a pass with a
// note, since pacman drives it identically.
func CheckYay(exec sysexec.CommandExecutor) Check {
	check := Check{
		ID:          IDYay,
		Name:        "yay",
		Description: "AUR helper for AUR package installs",
		FixCommand:  getFixCommand(IDYay),
	}

	if _, err := exec.LookPath("yay"); err == nil {
		check.Status = StatusOK
		check.Message = "installed"
		return check
	}
	if _, err := exec.LookPath("paru"); err == nil {
		check.Status = StatusOK
		check.Message = "paru found (used instead of yay)"
		return check
	}

	check.Status = StatusMissing
	check.Message = "no AUR helper installed"
	return check
}

// CheckPython verifies a Python interpreter is available for the fan daemon.
func CheckPython(exec sysexec.CommandExecutor) Check {
	check := checkTool(exec, IDPython, "python3", "Runs the fan-performance daemon",
		[]string{"--version"}, getFixCommand(IDPython))
	if check.Status == StatusMissing {
		if _, err := exec.LookPath("python"); err == nil {
			check.Status = StatusOK
			check.Message = "python found (no python3 symlink)"
		}
	}
	return check
}

// CheckEcSys verifies the ec_sys kernel module is loaded with write support,
// which the fan daemon needs to talk to the embedded controller.
func CheckEcSys(exec sysexec.CommandExecutor) Check {
	check := Check{
		ID:          IDEcSys,
		Name:        "ec_sys module",
		Description: "Kernel module giving the fan daemon EC register access",
		FixCommand:  getFixCommand(IDEcSys),
	}

	data, err := os.ReadFile("/proc/modules")
	if err != nil {
		check.Status = StatusError
		check.Message = "cannot read /proc/modules"
		return check
	}

	if !moduleLoaded(string(data), "ec_sys") {
		check.Status = StatusWarning
		check.Message = "not loaded (fan daemon will not control fans)"
		return check
	}

	if !exec.FileExists("/sys/kernel/debug/ec/ec0/io") {
		check.Status = StatusWarning
		check.Message = "loaded without write support"
		return check
	}

	check.Status = StatusOK
	check.Message = "loaded with write support"
	return check
}

// moduleLoaded scans /proc/modules content for a module name.
func moduleLoaded(procModules, name string) bool {
	for _, line := range strings.Split(procModules, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == name {
			return true
		}
	}
	return false
}

// CheckDataDir verifies the backup data directory exists and is writable.
func CheckDataDir(exec sysexec.CommandExecutor, dataDir string) Check {
	check := Check{
		ID:          IDDataDir,
		Name:        "Data directory",
		Description: "Where backup folders are stored",
	}

	if dataDir == "" {
		check.Status = StatusWarning
		check.Message = "not configured (run 'hydecli init')"
		return check
	}

	info, err := os.Stat(dataDir)
	if err != nil {
		check.Status = StatusWarning
		check.Message = dataDir + " does not exist (created on first backup)"
		return check
	}
	if !info.IsDir() {
		check.Status = StatusError
		check.Message = dataDir + " is not a directory"
		return check
	}

	probe, err := os.CreateTemp(dataDir, ".doctor-*")
	if err != nil {
		check.Status = StatusError
		check.Message = dataDir + " is not writable"
		return check
	}
	probe.Close()
	os.Remove(probe.Name())

	check.Status = StatusOK
	check.Message = dataDir
	return check
}
