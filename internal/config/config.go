package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Config represents the monakit configuration
type Config struct {
	ContentDir   string        `json:"content_dir"`
	PublicDir    string        `json:"public_dir"`
	OutputDir    string        `json:"output_dir"`
	LogFile      string        `json:"log_file"`
	LogLevel     string        `json:"log_level,omitempty"`
	Interval     time.Duration `json:"-"` // Custom JSON handling below
	ThemesFile   string        `json:"themes_file,omitempty"`
	ShareBaseURL string        `json:"share_base_url,omitempty"`
}

// fileConfig is the on-disk form, with the interval as a duration string
type fileConfig struct {
	ContentDir   string `json:"content_dir"`
	PublicDir    string `json:"public_dir"`
	OutputDir    string `json:"output_dir"`
	LogFile      string `json:"log_file"`
	LogLevel     string `json:"log_level,omitempty"`
	Interval     string `json:"interval"`
	ThemesFile   string `json:"themes_file,omitempty"`
	ShareBaseURL string `json:"share_base_url,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	site := filepath.Join(home, "site")
	return &Config{
		ContentDir:   filepath.Join(site, "src", "content"),
		PublicDir:    filepath.Join(site, "public"),
		OutputDir:    filepath.Join(site, "dist"),
		LogFile:      filepath.Join(os.TempDir(), "monakit.log"),
		LogLevel:     "info",
		Interval:     30 * time.Second,
		ShareBaseURL: "https://mermaid.live",
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(xdg.ConfigHome, "monakit", "config.json")
	}
	return filepath.Join(home, ".config", "monakit", "config.json")
}

// StateFilePath returns the path to the build state file
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "monakit", "state.json")
}

// CardsDir is where card markdown files live
func (c *Config) CardsDir() string {
	return filepath.Join(c.ContentDir, "cards")
}

// ManifestPath is where the build writes the share manifest
func (c *Config) ManifestPath() string {
	return filepath.Join(c.OutputDir, "share.json")
}

// Load reads configuration from the config directory
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes, validates and expands a JSON configuration. Missing fields
// keep their defaults.
func Parse(data []byte) (*Config, error) {
	def := DefaultConfig()
	raw := fileConfig{
		ContentDir:   def.ContentDir,
		PublicDir:    def.PublicDir,
		OutputDir:    def.OutputDir,
		LogFile:      def.LogFile,
		LogLevel:     def.LogLevel,
		Interval:     def.Interval.String(),
		ShareBaseURL: def.ShareBaseURL,
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	interval, err := time.ParseDuration(raw.Interval)
	if err != nil {
		return nil, fmt.Errorf("invalid interval format '%s': %w", raw.Interval, err)
	}

	cfg := &Config{
		ContentDir:   raw.ContentDir,
		PublicDir:    raw.PublicDir,
		OutputDir:    raw.OutputDir,
		LogFile:      raw.LogFile,
		LogLevel:     raw.LogLevel,
		Interval:     interval,
		ThemesFile:   raw.ThemesFile,
		ShareBaseURL: raw.ShareBaseURL,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config directory
func (c *Config) Save() error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := fileConfig{
		ContentDir:   c.ContentDir,
		PublicDir:    c.PublicDir,
		OutputDir:    c.OutputDir,
		LogFile:      c.LogFile,
		LogLevel:     c.LogLevel,
		Interval:     c.Interval.String(),
		ThemesFile:   c.ThemesFile,
		ShareBaseURL: c.ShareBaseURL,
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

var validLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir cannot be empty")
	}
	if c.PublicDir == "" {
		return fmt.Errorf("public_dir cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if c.LogFile == "" {
		return fmt.Errorf("log_file cannot be empty")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level '%s': must be one of: debug, info, warn, error, fatal", c.LogLevel)
	}
	if c.ShareBaseURL != "" {
		u, err := url.Parse(c.ShareBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid share_base_url '%s': must be an http(s) URL", c.ShareBaseURL)
		}
	}

	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	paths := []struct {
		name string
		path *string
	}{
		{"content_dir", &c.ContentDir},
		{"public_dir", &c.PublicDir},
		{"output_dir", &c.OutputDir},
		{"log_file", &c.LogFile},
		{"themes_file", &c.ThemesFile},
	}

	for _, p := range paths {
		expanded, err := expandPath(*p.path)
		if err != nil {
			return fmt.Errorf("failed to expand %s: %w", p.name, err)
		}
		*p.path = expanded
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
