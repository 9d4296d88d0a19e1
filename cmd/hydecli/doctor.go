package main

import (
	"fmt"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/doctor"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/globalconfig"
	"github.com/tranconcoder/arch-linux-hyde-config/pkg/tui"
)

// runDoctor checks the system dependencies and optionally fixes failures.
func runDoctor(fix bool) error {
	cfg := globalconfig.LoadOrDefault()

	checker := doctor.NewChecker()
	checker.SetDataDir(cfg.DataDir)

	groups := checker.CheckAllAsync()
	printCheckGroups(groups)

	summary := checker.GetSummary(groups)
	fmt.Println()
	if !checker.HasIssues(groups) {
		tui.Success("All %d checks passed.", summary.Total)
		return nil
	}

	tui.Warning("%d of %d checks need attention.", summary.Missing+summary.Errors, summary.Total)

	if !fix {
		fmt.Println("Run 'hydecli doctor --fix' to attempt fixes.")
		return nil
	}

	fmt.Println()
	fixer := doctor.NewFixer()
	results := fixer.FixAll(groups)
	if len(results) == 0 {
		tui.Warning("No automatic fixes available for the failed checks.")
		return nil
	}
	for checkID, err := range results {
		if err != nil {
			tui.Error("Fix for %s failed: %v", checkID, err)
		} else {
			tui.Success("Fixed %s", checkID)
		}
	}
	return nil
}

// printCheckGroups prints per-group check results.
func printCheckGroups(groups []doctor.CheckGroup) {
	for _, group := range groups {
		fmt.Println(tui.TitleStyle.Render(group.Name))
		for _, check := range group.Checks {
			printCheck(check)
		}
		fmt.Println()
	}
}

func printCheck(check doctor.Check) {
	switch check.Status {
	case doctor.StatusOK:
		tui.Success("  ✓ %-12s %s", check.Name, check.Message)
	case doctor.StatusWarning:
		tui.Warning("  ! %-12s %s", check.Name, check.Message)
	default:
		tui.Error("  ✗ %-12s %s", check.Name, check.Message)
		if check.FixCommand != nil {
			fmt.Println(tui.SubtitleStyle.Render(fmt.Sprintf("      fix: %s", check.FixCommand.Description)))
		}
	}
}
