package doctor

// groupDefinitions defines the check groups with their metadata.
var groupDefinitions = map[string]struct {
	Name        string
	Description string
	CheckIDs    []string
}{
	GroupCore: {
		Name:        "Core",
		Description: "Required for package installation and service management",
		CheckIDs:    []string{IDPacman, IDSudo, IDSystemctl},
	},
	GroupAUR: {
		Name:        "AUR",
		Description: "Required for installing AUR packages",
		CheckIDs:    []string{IDGit, IDYay},
	},
	GroupFan: {
		Name:        "Fan Control",
		Description: "Required for the fan-performance daemon",
		CheckIDs:    []string{IDPython, IDEcSys},
	},
	GroupStorage: {
		Name:        "Backup Storage",
		Description: "Required for backup and restore",
		CheckIDs:    []string{IDDataDir},
	},
}

// GetGroups returns all check groups.
func GetGroups() []CheckGroup {
	var groups []CheckGroup
	for _, groupID := range GetAllGroupIDs() {
		def := groupDefinitions[groupID]
		groups = append(groups, CheckGroup{
			ID:          groupID,
			Name:        def.Name,
			Description: def.Description,
		})
	}
	return groups
}

// GetGroupDefinition returns the definition for a specific group.
func GetGroupDefinition(groupID string) (struct {
	Name        string
	Description string
	CheckIDs    []string
}, bool) {
	def, ok := groupDefinitions[groupID]
	return def, ok
}

// GetAllGroupIDs returns all group IDs in display order.
func GetAllGroupIDs() []string {
	return []string{GroupCore, GroupAUR, GroupFan, GroupStorage}
}
