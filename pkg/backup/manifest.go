package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is the manifest written into each backup folder.
const ManifestFileName = "manifest.yaml"

// ItemStatus is the per-item outcome recorded in a backup manifest.
type ItemStatus string

const (
	ItemArchived ItemStatus = "archived"
	ItemSkipped  ItemStatus = "skipped"
	ItemFailed   ItemStatus = "failed"
)

// ItemResult records the outcome of archiving one item.
type ItemResult struct {
	Name    string     `yaml:"name"`
	Source  string     `yaml:"source"`
	Status  ItemStatus `yaml:"status"`
	Size    int64      `yaml:"size,omitempty"`  // archive size in bytes
	Parts   int        `yaml:"parts,omitempty"` // >0 when the archive was split
	Message string     `yaml:"message,omitempty"`
}

// Manifest describes one backup folder.
type Manifest struct {
	ID        string       `yaml:"id"` // uuid
	CreatedAt time.Time    `yaml:"created_at"`
	Hostname  string       `yaml:"hostname,omitempty"`
	Items     []ItemResult `yaml:"items"`
}

// NewManifest creates a manifest with a fresh ID.
func NewManifest() *Manifest {
	hostname, _ := os.Hostname()
	return &Manifest{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Hostname:  hostname,
	}
}

// AllFailed returns true if every item in the backup failed. Skipped items
// count as non-failures, matching the skip-and-continue install semantics.
func (m *Manifest) AllFailed() bool {
	if len(m.Items) == 0 {
		return false
	}
	for _, r := range m.Items {
		if r.Status != ItemFailed {
			return false
		}
	}
	return true
}

// Archived returns the results of items that were archived.
func (m *Manifest) Archived() []ItemResult {
	var out []ItemResult
	for _, r := range m.Items {
		if r.Status == ItemArchived {
			out = append(out, r)
		}
	}
	return out
}

// Write saves the manifest into the given backup folder.
func (m *Manifest) Write(dir string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the manifest from a backup folder. A missing manifest is
// not fatal for restore (older backups predate it), so callers check
// os.IsNotExist on the wrapped error.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
