package packages

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// manifest is the on-disk shape of manifest.yaml.
type manifest struct {
	Packages []Package `yaml:"packages"`
}

// Load parses the embedded manifest and returns a populated registry.
func Load() (*Registry, error) {
	return loadFrom(manifestYAML)
}

// loadFrom parses manifest data. Split out for tests.
func loadFrom(data []byte) (*Registry, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse package manifest: %w", err)
	}

	registry := NewRegistry()
	for i, pkg := range m.Packages {
		if pkg.Name == "" {
			return nil, fmt.Errorf("package manifest entry %d has no name", i)
		}
		switch pkg.Repo {
		case RepoOfficial, RepoAUR:
		case "":
			pkg.Repo = RepoOfficial
		default:
			return nil, fmt.Errorf("package %q has unknown repo %q", pkg.Name, pkg.Repo)
		}
		if _, dup := registry.ByName[pkg.Name]; dup {
			return nil, fmt.Errorf("package %q listed twice in manifest", pkg.Name)
		}
		registry.Add(pkg)
	}

	return registry, nil
}
