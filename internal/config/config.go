package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultEndpoint is the public Pixabay image search endpoint
const DefaultEndpoint = "https://pixabay.com/api/"

// Environment variables that override the API key, in priority order
var apiKeyEnv = []string{"PIXGRIP_API_KEY", "PIXABAY_API_KEY"}

// Config represents the application configuration
type Config struct {
	Version          int         `toml:"version"`
	APIKey           string      `toml:"api_key"`
	Endpoint         string      `toml:"endpoint"`
	PerPage          int         `toml:"per_page"`
	ImageType        string      `toml:"image_type"`
	Orientation      string      `toml:"orientation"`
	SafeSearch       bool        `toml:"safe_search"`
	TimeoutMs        int         `toml:"timeout_ms"`
	CacheTTLSeconds  int         `toml:"cache_ttl_seconds"`
	PreviewCacheSize int         `toml:"preview_cache_size"`
	Log              LogSettings `toml:"log"`
	UI               UISettings  `toml:"ui"`
}

// LogSettings controls the rotated log file
type LogSettings struct {
	File       string `toml:"file"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Columns    int  `toml:"columns"` // 0 fits as many tiles as the width allows
	ShowAuthor bool `toml:"show_author"`
	Mouse      bool `toml:"mouse"`
}

// Timeout returns the HTTP timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// CacheTTL returns how long search pages stay cached
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Validate reports configuration that cannot produce a working client
func (c *Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, fmt.Errorf("api_key is empty (set it in the config file or %s)", apiKeyEnv[0]))
	}
	if c.Endpoint == "" {
		errs = append(errs, errors.New("endpoint is empty"))
	}
	if c.PerPage <= 0 {
		errs = append(errs, fmt.Errorf("per_page must be positive, got %d", c.PerPage))
	}
	if c.TimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMs))
	}
	return errors.Join(errs...)
}

// ApplyEnv overrides fields from the environment
func (c *Config) ApplyEnv() {
	for _, name := range apiKeyEnv {
		if v := os.Getenv(name); v != "" {
			c.APIKey = v
			return
		}
	}
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

// NewConfigService creates a config service for the default location
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath())
}

// NewConfigServiceAt creates a config service bound to path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/pixgrip/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "pixgrip", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the bound path, returning defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.ApplyEnv()
		return cfg, nil
	}
	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// Save saves the configuration to the bound path
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path; unset fields keep their defaults
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file holds an API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:          1,
		Endpoint:         DefaultEndpoint,
		PerPage:          12,
		ImageType:        "photo",
		Orientation:      "horizontal",
		SafeSearch:       true,
		TimeoutMs:        10000,
		CacheTTLSeconds:  300,
		PreviewCacheSize: 32,
		Log: LogSettings{
			File:       "pixgrip.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		UI: UISettings{
			ShowAuthor: true,
			Mouse:      true,
		},
	}
}
