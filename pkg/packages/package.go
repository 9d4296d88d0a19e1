// Package packages provides the manifest of installable desktop packages
// and a registry for grouping and lookup.
package packages

import "strings"

// Category represents a grouping of related packages.
type Category string

const (
	CategoryDesktop  Category = "Desktop & Compositor"
	CategoryTerminal Category = "Terminal & Shell"
	CategoryTheming  Category = "Theming & Fonts"
	CategoryMedia    Category = "Media & Screenshot"
	CategoryTools    Category = "CLI Tools"
	CategorySystem   Category = "System"
)

// categorySlugs maps the short names used on the command line to categories.
var categorySlugs = map[string]Category{
	"desktop":  CategoryDesktop,
	"terminal": CategoryTerminal,
	"theming":  CategoryTheming,
	"media":    CategoryMedia,
	"tools":    CategoryTools,
	"system":   CategorySystem,
}

// CategorySlugs returns the short category names accepted by ParseCategory.
func CategorySlugs() []string {
	return []string{"desktop", "terminal", "theming", "media", "tools", "system"}
}

// ParseCategory resolves a category from a short slug ("desktop") or a full
// display name, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if cat, ok := categorySlugs[strings.ToLower(s)]; ok {
		return cat, true
	}
	for _, cat := range categorySlugs {
		if strings.EqualFold(string(cat), s) {
			return cat, true
		}
	}
	return "", false
}

// Repo identifies which repository a package comes from.
type Repo string

const (
	// RepoOfficial packages install via pacman.
	RepoOfficial Repo = "official"
	// RepoAUR packages install via an AUR helper (yay/paru).
	RepoAUR Repo = "aur"
)

// Package represents an installable package from the embedded manifest.
type Package struct {
	// Name is the pacman/AUR package name (e.g., "hyprland")
	Name string `yaml:"name"`

	// Description is a brief description of the package
	Description string `yaml:"description"`

	// Repo is "official" or "aur"
	Repo Repo `yaml:"repo"`

	// Category is the package category for grouping in the TUI
	Category Category `yaml:"category"`

	// Default indicates whether the package is selected by default
	Default bool `yaml:"default"`
}

// IsAUR returns true if the package installs via an AUR helper.
func (p Package) IsAUR() bool {
	return p.Repo == RepoAUR
}

// Registry holds all manifest packages.
// Note: Registry is not thread-safe and should not be modified concurrently.
type Registry struct {
	// Packages is an ordered list of all manifest packages
	Packages []Package

	// ByName provides quick lookup by package name (stores copies, not pointers)
	ByName map[string]Package

	// ByCategory groups packages by their category
	ByCategory map[Category][]Package
}

// NewRegistry creates an empty package registry.
func NewRegistry() *Registry {
	return &Registry{
		Packages:   make([]Package, 0, 32),
		ByName:     make(map[string]Package),
		ByCategory: make(map[Category][]Package),
	}
}

// Add adds a package to the registry.
func (r *Registry) Add(pkg Package) {
	r.Packages = append(r.Packages, pkg)
	r.ByName[pkg.Name] = pkg // Store copy, not pointer

	if _, ok := r.ByCategory[pkg.Category]; !ok {
		r.ByCategory[pkg.Category] = make([]Package, 0)
	}
	r.ByCategory[pkg.Category] = append(r.ByCategory[pkg.Category], pkg)
}

// Get returns a package by name, or nil if not found.
func (r *Registry) Get(name string) *Package {
	if pkg, ok := r.ByName[name]; ok {
		return &pkg
	}
	return nil
}

// Names returns a list of all package names.
func (r *Registry) Names() []string {
	names := make([]string, len(r.Packages))
	for i, pkg := range r.Packages {
		names[i] = pkg.Name
	}
	return names
}

// Defaults returns the names of packages selected by default.
func (r *Registry) Defaults() []string {
	var names []string
	for _, pkg := range r.Packages {
		if pkg.Default {
			names = append(names, pkg.Name)
		}
	}
	return names
}

// Official returns all official-repo packages among the given names,
// preserving manifest order. Unknown names are ignored.
func (r *Registry) Official(names []string) []string {
	return r.filterByRepo(names, RepoOfficial)
}

// AUR returns all AUR packages among the given names, preserving manifest order.
func (r *Registry) AUR(names []string) []string {
	return r.filterByRepo(names, RepoAUR)
}

func (r *Registry) filterByRepo(names []string, repo Repo) []string {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var result []string
	for _, pkg := range r.Packages {
		if want[pkg.Name] && pkg.Repo == repo {
			result = append(result, pkg.Name)
		}
	}
	return result
}

// Categories returns all categories that have packages, in display order.
func (r *Registry) Categories() []Category {
	order := []Category{
		CategoryDesktop, CategoryTerminal, CategoryTheming,
		CategoryMedia, CategoryTools, CategorySystem,
	}
	result := make([]Category, 0)
	for _, cat := range order {
		if pkgs, ok := r.ByCategory[cat]; ok && len(pkgs) > 0 {
			result = append(result, cat)
		}
	}
	return result
}
