package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// CurrentVersion is the config file format version this build writes
const CurrentVersion = 1

// Config represents the application configuration
type Config struct {
	Version     int            `toml:"version"`
	Title       string         `toml:"title,omitempty"`
	Items       []string       `toml:"items,omitempty"`
	Unavailable []string       `toml:"unavailable,omitempty"` // items shown but never selectable
	Cursor      CursorSettings `toml:"cursor"`
	UISettings  UISettings     `toml:"ui"`
	Log         LogSettings    `toml:"log"`
}

// CursorSettings configures the cursor
type CursorSettings struct {
	Wrap         bool `toml:"wrap"`
	Required     bool `toml:"required"`
	InitialIndex int  `toml:"initial_index"` // -1 for none
}

// UISettings represents UI-related configuration
type UISettings struct {
	ViewportHeight  int    `toml:"viewport_height"` // 0 fits the terminal
	ShowPageNumbers bool   `toml:"show_page_numbers"`
	FilterMode      string `toml:"filter_mode"`
}

// LogSettings configures the log file
type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service for the default location,
// $XDG_CONFIG_HOME/itemcursor/config.toml
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return NewConfigServiceWithPath(filepath.Join(configDir, "itemcursor", "config.toml"))
}

// NewConfigServiceWithPath creates a config service for an explicit file
func NewConfigServiceWithPath(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the file Load and Save use
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when the
// file doesn't exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	// Keys missing from the file keep their defaults.
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

// Validate checks values that can't be expressed by the TOML types alone
func (c *Config) Validate() error {
	if c.Version > CurrentVersion {
		return errors.Errorf("unsupported config version %d", c.Version)
	}
	if c.UISettings.ViewportHeight < 0 {
		return errors.Errorf("viewport_height must not be negative, got %d", c.UISettings.ViewportHeight)
	}
	switch c.UISettings.FilterMode {
	case "", "dim", "hide":
	default:
		return errors.Errorf("filter_mode must be dim or hide, got %q", c.UISettings.FilterMode)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Cursor: CursorSettings{
			InitialIndex: -1,
		},
		UISettings: UISettings{
			ShowPageNumbers: true,
			FilterMode:      "dim",
		},
		Log: LogSettings{
			Level: "INFO",
			File:  "itemcursor.log",
		},
	}
}
