package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func overrideConfigPath(t *testing.T, path string) {
	t.Helper()
	original := ConfigPath
	ConfigPath = func() string {
		return path
	}
	t.Cleanup(func() {
		ConfigPath = original
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ContentDir == "" {
		t.Error("Expected ContentDir to be set")
	}
	if cfg.PublicDir == "" {
		t.Error("Expected PublicDir to be set")
	}
	if cfg.OutputDir == "" {
		t.Error("Expected OutputDir to be set")
	}
	if cfg.LogFile == "" {
		t.Error("Expected LogFile to be set")
	}
	if cfg.Interval != 30*time.Second {
		t.Errorf("Expected Interval to be 30s, got %v", cfg.Interval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func validConfig() *Config {
	return &Config{
		ContentDir: "/site/src/content",
		PublicDir:  "/site/public",
		OutputDir:  "/site/dist",
		LogFile:    "/tmp/test.log",
		Interval:   30 * time.Second,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "empty content_dir", mutate: func(c *Config) { c.ContentDir = "" }, wantErr: "content_dir"},
		{name: "empty public_dir", mutate: func(c *Config) { c.PublicDir = "" }, wantErr: "public_dir"},
		{name: "empty output_dir", mutate: func(c *Config) { c.OutputDir = "" }, wantErr: "output_dir"},
		{name: "zero interval", mutate: func(c *Config) { c.Interval = 0 }, wantErr: "interval"},
		{name: "negative interval", mutate: func(c *Config) { c.Interval = -5 * time.Second }, wantErr: "interval"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "log_level"},
		{name: "bad share url", mutate: func(c *Config) { c.ShareBaseURL = "mermaid.live" }, wantErr: "share_base_url"},
		{name: "custom share url", mutate: func(c *Config) { c.ShareBaseURL = "http://localhost:8080" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	testConfigPath := filepath.Join(t.TempDir(), "config.json")
	overrideConfigPath(t, testConfigPath)

	testCfg := validConfig()
	testCfg.Interval = 45 * time.Second
	testCfg.ThemesFile = "/site/themes.yaml"
	testCfg.LogLevel = "debug"

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(testConfigPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.Interval != testCfg.Interval {
		t.Errorf("Interval mismatch: got %v, want %v", loadedCfg.Interval, testCfg.Interval)
	}
	if loadedCfg.ThemesFile != testCfg.ThemesFile {
		t.Errorf("ThemesFile mismatch: got %q", loadedCfg.ThemesFile)
	}
	if loadedCfg.LogLevel != "debug" {
		t.Errorf("LogLevel mismatch: got %q", loadedCfg.LogLevel)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	overrideConfigPath(t, filepath.Join(t.TempDir(), "nonexistent.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Interval != 30*time.Second {
		t.Errorf("Expected default interval 30s, got %v", cfg.Interval)
	}
}

func TestParsePartial(t *testing.T) {
	cfg, err := Parse([]byte(`{"content_dir": "/blog/content", "interval": "2m"}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.ContentDir != "/blog/content" {
		t.Errorf("ContentDir = %q", cfg.ContentDir)
	}
	if cfg.Interval != 2*time.Minute {
		t.Errorf("Interval = %v", cfg.Interval)
	}
	if cfg.ShareBaseURL != "https://mermaid.live" {
		t.Errorf("ShareBaseURL should keep its default, got %q", cfg.ShareBaseURL)
	}
	if cfg.CardsDir() != filepath.Join("/blog/content", "cards") {
		t.Errorf("CardsDir = %q", cfg.CardsDir())
	}
	if filepath.Base(cfg.ManifestPath()) != "share.json" {
		t.Errorf("ManifestPath = %q", cfg.ManifestPath())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"bad interval", `{"interval": "often"}`},
		{"invalid value", `{"output_dir": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expansion", "~/test", filepath.Join(homeDir, "test")},
		{"tilde only", "~", homeDir},
		{"absolute path", "/tmp/test", "/tmp/test"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if err != nil {
				t.Fatalf("expandPath() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfigPathsExpanded(t *testing.T) {
	overrideConfigPath(t, filepath.Join(t.TempDir(), "config.json"))

	testCfg := &Config{
		ContentDir: "~/site/content",
		PublicDir:  "~/site/public",
		OutputDir:  "~/site/dist",
		LogFile:    "~/monakit.log",
		ThemesFile: "~/themes.yaml",
		Interval:   30 * time.Second,
	}

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	for name, p := range map[string]string{
		"ContentDir": loadedCfg.ContentDir,
		"PublicDir":  loadedCfg.PublicDir,
		"OutputDir":  loadedCfg.OutputDir,
		"LogFile":    loadedCfg.LogFile,
		"ThemesFile": loadedCfg.ThemesFile,
	} {
		if strings.HasPrefix(p, "~") {
			t.Errorf("%s was not expanded: %s", name, p)
		}
	}
}
