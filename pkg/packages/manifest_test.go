package packages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	cat, ok := ParseCategory("desktop")
	require.True(t, ok)
	assert.Equal(t, CategoryDesktop, cat)

	cat, ok = ParseCategory("Desktop & Compositor")
	require.True(t, ok)
	assert.Equal(t, CategoryDesktop, cat)

	cat, ok = ParseCategory("TOOLS")
	require.True(t, ok)
	assert.Equal(t, CategoryTools, cat)

	cat, ok = ParseCategory(" system ")
	require.True(t, ok)
	assert.Equal(t, CategorySystem, cat)

	_, ok = ParseCategory("games")
	assert.False(t, ok)
}

func TestLoad_EmbeddedManifest(t *testing.T) {
	registry, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, registry.Packages)

	// Spot-check a few entries that the rest of the tool depends on
	hypr := registry.Get("hyprland")
	require.NotNil(t, hypr)
	assert.Equal(t, RepoOfficial, hypr.Repo)
	assert.Equal(t, CategoryDesktop, hypr.Category)
	assert.True(t, hypr.Default)

	wlogout := registry.Get("wlogout")
	require.NotNil(t, wlogout)
	assert.True(t, wlogout.IsAUR())
}

func TestLoadFrom_Minimal(t *testing.T) {
	data := []byte(`
packages:
  - name: kitty
    description: Terminal
    repo: official
    category: Terminal & Shell
    default: true
  - name: wlogout
    repo: aur
    category: Desktop & Compositor
`)
	registry, err := loadFrom(data)
	require.NoError(t, err)

	assert.Len(t, registry.Packages, 2)
	assert.Equal(t, []string{"kitty", "wlogout"}, registry.Names())
	assert.Equal(t, []string{"kitty"}, registry.Defaults())
	assert.Equal(t, []string{"kitty"}, registry.Official(registry.Names()))
	assert.Equal(t, []string{"wlogout"}, registry.AUR(registry.Names()))
}

func TestLoadFrom_DefaultsToOfficialRepo(t *testing.T) {
	data := []byte(`
packages:
  - name: git
    category: CLI Tools
`)
	registry, err := loadFrom(data)
	require.NoError(t, err)
	assert.Equal(t, RepoOfficial, registry.Get("git").Repo)
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing name", "packages:\n  - description: x\n"},
		{"bad repo", "packages:\n  - name: x\n    repo: flatpak\n"},
		{"duplicate", "packages:\n  - name: x\n  - name: x\n"},
		{"invalid yaml", "packages: ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFrom([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestRegistry_Categories(t *testing.T) {
	registry, err := Load()
	require.NoError(t, err)

	cats := registry.Categories()
	require.NotEmpty(t, cats)
	// Desktop group sorts first in display order
	assert.Equal(t, CategoryDesktop, cats[0])

	for _, cat := range cats {
		assert.NotEmpty(t, registry.ByCategory[cat])
	}
}
