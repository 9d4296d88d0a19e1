// Package backup archives a fixed set of configuration directories into
// timestamped backup folders, splitting oversized archives into parts, and
// restores them.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Item is a named directory (or file) included in backups. Source is relative
// to the user's home directory.
type Item struct {
	// Name identifies the item and names its archive (<name>.tar.gz).
	Name string `yaml:"name"`

	// Source is the home-relative path backed up, e.g. ".config/hypr".
	Source string `yaml:"source"`

	// Description is shown in the item picker.
	Description string `yaml:"description,omitempty"`
}

// DefaultItems is the fixed set of configuration directories and fan-control
// scripts covered by backups. Config can disable entries or add extras.
var DefaultItems = []Item{
	{Name: "hypr", Source: ".config/hypr", Description: "Hyprland compositor config"},
	{Name: "waybar", Source: ".config/waybar", Description: "Waybar status bar config"},
	{Name: "kitty", Source: ".config/kitty", Description: "Kitty terminal config"},
	{Name: "fish", Source: ".config/fish", Description: "Fish shell config"},
	{Name: "rofi", Source: ".config/rofi", Description: "Rofi launcher config"},
	{Name: "swaync", Source: ".config/swaync", Description: "Notification daemon config"},
	{Name: "fastfetch", Source: ".config/fastfetch", Description: "Fastfetch config"},
	{Name: "wlogout", Source: ".config/wlogout", Description: "Logout menu config"},
	{Name: "starship", Source: ".config/starship.toml", Description: "Starship prompt config"},
	{Name: "themes", Source: ".themes", Description: "GTK themes"},
	{Name: "fan-control", Source: ".local/share/fan-control", Description: "Fan control scripts"},
}

// ArchiveName returns the archive file name for the item.
func (i Item) ArchiveName() string {
	return i.Name + ".tar.gz"
}

// SourcePath returns the absolute source path under the given home directory.
func (i Item) SourcePath(home string) string {
	return filepath.Join(home, i.Source)
}

// Validate checks the item definition.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("backup item has no name")
	}
	if strings.ContainsAny(i.Name, "/\\") {
		return fmt.Errorf("backup item %q: name must not contain path separators", i.Name)
	}
	if i.Source == "" {
		return fmt.Errorf("backup item %q has no source path", i.Name)
	}
	if filepath.IsAbs(i.Source) {
		return fmt.Errorf("backup item %q: source must be home-relative, got %q", i.Name, i.Source)
	}
	return nil
}

// Items is an ordered item set with name lookup.
type Items struct {
	list   []Item
	byName map[string]Item
}

// NewItems builds an item set, validating each entry.
func NewItems(items []Item) (*Items, error) {
	set := &Items{byName: make(map[string]Item, len(items))}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, dup := set.byName[item.Name]; dup {
			return nil, fmt.Errorf("backup item %q defined twice", item.Name)
		}
		set.list = append(set.list, item)
		set.byName[item.Name] = item
	}
	return set, nil
}

// All returns all items in order.
func (s *Items) All() []Item {
	return s.list
}

// Get returns an item by name.
func (s *Items) Get(name string) (Item, bool) {
	item, ok := s.byName[name]
	return item, ok
}

// Names returns all item names in order.
func (s *Items) Names() []string {
	names := make([]string, len(s.list))
	for i, item := range s.list {
		names[i] = item.Name
	}
	return names
}

// Select returns the items matching the given names, in set order.
// Unknown names are an error so typos surface instead of silently skipping.
func (s *Items) Select(names []string) ([]Item, error) {
	if len(names) == 0 {
		return s.list, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := s.byName[n]; !ok {
			return nil, fmt.Errorf("unknown backup item %q (known: %s)", n, strings.Join(s.Names(), ", "))
		}
		want[n] = true
	}
	var result []Item
	for _, item := range s.list {
		if want[item.Name] {
			result = append(result, item)
		}
	}
	return result, nil
}

// homeDir returns the user home directory, honoring an override for tests.
func homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return home, nil
}
