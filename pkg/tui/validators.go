package tui

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// itemNameRe matches valid backup item names.
var itemNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateRequired returns a validator that ensures a field is not empty.
func ValidateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// ValidateAbsolutePath ensures a path is absolute.
func ValidateAbsolutePath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("path is required")
	}
	if !filepath.IsAbs(s) {
		return fmt.Errorf("path must be absolute, got %q", s)
	}
	return nil
}

// ValidateItemName ensures a backup item name is usable as an archive name.
func ValidateItemName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("item name is required")
	}
	if !itemNameRe.MatchString(s) {
		return fmt.Errorf("invalid item name: use lowercase letters, digits, '.', '_' or '-'")
	}
	return nil
}
