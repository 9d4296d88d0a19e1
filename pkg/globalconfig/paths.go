// Package globalconfig provides global configuration management for hydecli.
// Configuration is stored at ~/.config/hydecli/config.yaml.
package globalconfig

import (
	"os"
	"path/filepath"
)

const (
	// ConfigDirName is the name of the config directory under ~/.config.
	ConfigDirName = "hydecli"
	// ConfigFileName is the name of the main config file.
	ConfigFileName = "config.yaml"
	// DefaultDataDirName is the default backup data directory under $HOME.
	DefaultDataDirName = "hyde-backups"
)

// GetConfigDir returns the config directory path (~/.config/hydecli).
// Respects XDG_CONFIG_HOME if set.
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDirName), nil
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(configDir, 0755)
}

// DefaultDataDir returns the default backup data directory (~/hyde-backups).
func DefaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, DefaultDataDirName)
	}
	// Fallback to temp directory
	return filepath.Join(os.TempDir(), ConfigDirName, DefaultDataDirName)
}
