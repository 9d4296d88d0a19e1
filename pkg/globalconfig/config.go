package globalconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/backup"
)

// Version is the current config schema version.
const Version = "1.0"

// ErrNotInitialized is returned when the config file doesn't exist.
var ErrNotInitialized = errors.New("hydecli not initialized: run 'hydecli init' first")

// Config represents the global hydecli configuration.
type Config struct {
	Version       string        `yaml:"version"`
	DataDir       string        `yaml:"data_dir"`                 // Where backup folders live
	KeepBackups   int           `yaml:"keep_backups"`             // Retention count, 0 = keep all
	ChunkSizeMB   int           `yaml:"chunk_size_mb,omitempty"`  // Split threshold override, 0 = default
	DisabledItems []string      `yaml:"disabled_items,omitempty"` // Default items excluded from backups
	ExtraItems    []backup.Item `yaml:"extra_items,omitempty"`    // User-added backup items
	Preferences   Preferences   `yaml:"preferences"`
}

// Preferences represents user preferences.
type Preferences struct {
	AURHelper string `yaml:"aur_helper,omitempty"` // "yay" or "paru", auto-detect when empty
	Color     bool   `yaml:"color"`                // Styled terminal output
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version:     Version,
		DataDir:     DefaultDataDir(),
		KeepBackups: 0,
		Preferences: Preferences{Color: true},
	}
}

// ChunkThreshold returns the configured split threshold in bytes, or the
// package default when unset.
func (c *Config) ChunkThreshold() int64 {
	if c.ChunkSizeMB <= 0 {
		return backup.DefaultChunkThreshold
	}
	return int64(c.ChunkSizeMB) * 1024 * 1024
}

// Items builds the effective backup item set: defaults minus disabled plus
// extras.
func (c *Config) Items() (*backup.Items, error) {
	disabled := make(map[string]bool, len(c.DisabledItems))
	for _, name := range c.DisabledItems {
		disabled[name] = true
	}

	var items []backup.Item
	for _, item := range backup.DefaultItems {
		if !disabled[item.Name] {
			items = append(items, item)
		}
	}
	items = append(items, c.ExtraItems...)

	return backup.NewItems(items)
}

// Load loads the config from ~/.config/hydecli/config.yaml.
// Returns ErrNotInitialized if the config doesn't exist.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return loadFrom(configPath)
}

// LoadOrDefault loads the config, falling back to defaults when not
// initialized. Commands that only read (backups list, doctor) use this.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return NewConfig()
	}
	return cfg
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	return &cfg, nil
}

// Save writes the config to ~/.config/hydecli/config.yaml.
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return c.saveTo(configPath)
}

func (c *Config) saveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
