package doctor

import (
	"sync"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/sysexec"
)

// Checker provides dependency checking functionality.
type Checker struct {
	executor sysexec.CommandExecutor
	dataDir  string // backup data directory for the storage check
}

// NewChecker creates a new Checker with the real command executor.
func NewChecker() *Checker {
	return &Checker{executor: &sysexec.RealExecutor{}}
}

// NewCheckerWithExecutor creates a new Checker with a custom executor (for testing).
func NewCheckerWithExecutor(exec sysexec.CommandExecutor) *Checker {
	return &Checker{executor: exec}
}

// SetDataDir sets the backup data directory to check.
func (c *Checker) SetDataDir(dir string) {
	c.dataDir = dir
}

// CheckAll runs all checks and returns groups with results.
func (c *Checker) CheckAll() []CheckGroup {
	var result []CheckGroup
	for _, groupID := range GetAllGroupIDs() {
		result = append(result, c.CheckGroup(groupID))
	}
	return result
}

// CheckAllAsync runs all groups concurrently and returns groups with results.
func (c *Checker) CheckAllAsync() []CheckGroup {
	groupIDs := GetAllGroupIDs()
	result := make([]CheckGroup, len(groupIDs))
	var wg sync.WaitGroup

	for i, groupID := range groupIDs {
		wg.Add(1)
		go func(idx int, id string) {
			defer wg.Done()
			result[idx] = c.CheckGroup(id)
		}(i, groupID)
	}

	wg.Wait()
	return result
}

// CheckGroup runs all checks for a specific group.
func (c *Checker) CheckGroup(groupID string) CheckGroup {
	def, ok := GetGroupDefinition(groupID)
	if !ok {
		return CheckGroup{ID: groupID, Name: "Unknown"}
	}

	group := CheckGroup{
		ID:          groupID,
		Name:        def.Name,
		Description: def.Description,
	}
	for _, checkID := range def.CheckIDs {
		group.Checks = append(group.Checks, c.runCheck(checkID))
	}
	return group
}

// runCheck runs a specific check by ID.
func (c *Checker) runCheck(checkID string) Check {
	switch checkID {
	case IDPacman:
		return CheckPacman(c.executor)
	case IDSudo:
		return CheckSudo(c.executor)
	case IDSystemctl:
		return CheckSystemctl(c.executor)
	case IDGit:
		return CheckGit(c.executor)
	case IDYay:
		return CheckYay(c.executor)
	case IDPython:
		return CheckPython(c.executor)
	case IDEcSys:
		return CheckEcSys(c.executor)
	case IDDataDir:
		return CheckDataDir(c.executor, c.dataDir)
	default:
		return Check{
			ID:      checkID,
			Name:    checkID,
			Status:  StatusError,
			Message: "unknown check",
		}
	}
}

// GetCheck runs a single check by ID.
func (c *Checker) GetCheck(checkID string) Check {
	return c.runCheck(checkID)
}

// Summary represents an overall health summary.
type Summary struct {
	Total    int
	OK       int
	Missing  int
	Warnings int
	Errors   int
}

// GetSummary returns a summary of check results.
func (c *Checker) GetSummary(groups []CheckGroup) Summary {
	var summary Summary
	for _, group := range groups {
		for _, check := range group.Checks {
			summary.Total++
			switch check.Status {
			case StatusOK:
				summary.OK++
			case StatusMissing:
				summary.Missing++
			case StatusWarning:
				summary.Warnings++
			case StatusError:
				summary.Errors++
			}
		}
	}
	return summary
}

// HasIssues returns true if any checks have issues.
func (c *Checker) HasIssues(groups []CheckGroup) bool {
	summary := c.GetSummary(groups)
	return summary.Missing > 0 || summary.Errors > 0
}
