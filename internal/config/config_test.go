package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.LogDir)
	}
	if cfg.OutputDir != "." {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, ".")
	}
	if cfg.Belt.Markers.TrialStart != "New trial" {
		t.Errorf("Belt.Markers.TrialStart = %q, want %q", cfg.Belt.Markers.TrialStart, "New trial")
	}
	if cfg.Belt.Segments != 3 {
		t.Errorf("Belt.Segments = %d, want 3", cfg.Belt.Segments)
	}
	if cfg.Belt.ExpectedTrials != 54 {
		t.Errorf("Belt.ExpectedTrials = %d, want 54", cfg.Belt.ExpectedTrials)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `log_level: debug
log_dir: /tmp/trialstats/logs
output_dir: out
belt:
  segments: 2
  expected_trials: 40
  markers:
    trial_end: [Exploded]
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogDir != "/tmp/trialstats/logs" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/tmp/trialstats/logs")
	}
	if cfg.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "out")
	}
	if cfg.Belt.Segments != 2 {
		t.Errorf("Belt.Segments = %d, want 2", cfg.Belt.Segments)
	}
	if cfg.Belt.ExpectedTrials != 40 {
		t.Errorf("Belt.ExpectedTrials = %d, want 40", cfg.Belt.ExpectedTrials)
	}
	if !reflect.DeepEqual(cfg.Belt.Markers.TrialEnd, []string{"Exploded"}) {
		t.Errorf("Belt.Markers.TrialEnd = %v, want [Exploded]", cfg.Belt.Markers.TrialEnd)
	}
	// Untouched nested keys keep their defaults
	if cfg.Belt.Markers.TrialStart != "New trial" {
		t.Errorf("Belt.Markers.TrialStart = %q, want default", cfg.Belt.Markers.TrialStart)
	}
	if cfg.Belt.ScoreColumn != "balloonscore" {
		t.Errorf("Belt.ScoreColumn = %q, want default", cfg.Belt.ScoreColumn)
	}
}

// TestLoadConfigFileNotExists tests fallback to defaults when file doesn't exist
func TestLoadConfigFileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() should not error on missing file, got: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

// TestLoadConfigInvalidYAML tests error handling for malformed YAML
func TestLoadConfigInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
log_level: debug
belt: [this is not valid
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig() expected error for invalid YAML, got nil")
	}
}

// TestLoadConfigFromDir tests loading config from .trialstats/config.yaml
func TestLoadConfigFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, ".trialstats")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `log_level: warn
belt:
  categories:
    - label: greenballoon
      alias: green
`
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfigFromDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	want := []Category{{Label: "greenballoon", Alias: "green"}}
	if !reflect.DeepEqual(cfg.Belt.Categories, want) {
		t.Errorf("Belt.Categories = %v, want %v", cfg.Belt.Categories, want)
	}
}

// TestLoadConfigFromDirNotExists tests loading when .trialstats dir doesn't exist
func TestLoadConfigFromDirNotExists(t *testing.T) {
	cfg, err := LoadConfigFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfigFromDir() should not error on missing config, got: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q (default)", cfg.LogLevel, "info")
	}
}

// TestEmptyConfigFile tests that an empty file yields defaults
func TestEmptyConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

// TestMergeWithFlags tests CLI flag precedence over config values
func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()

	logLevel := "debug"
	outputDir := "/custom/out"
	cfg.MergeWithFlags(&logLevel, nil, &outputDir)

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want unchanged empty", cfg.LogDir)
	}
	if cfg.OutputDir != "/custom/out" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "/custom/out")
	}
}

// TestLogLevelCaseInsensitive tests that log levels from flags and files
// are accepted in any case
func TestLogLevelCaseInsensitive(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  string
	}{
		{name: "upper case", level: "WARN", want: "warn"},
		{name: "mixed case with spaces", level: " Debug ", want: "debug"},
		{name: "lower case", level: "error", want: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" flag", func(t *testing.T) {
			cfg := DefaultConfig()
			level := tt.level
			cfg.MergeWithFlags(&level, nil, nil)

			if cfg.LogLevel != tt.want {
				t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, tt.want)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})

		t.Run(tt.name+" file", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			content := "log_level: \"" + tt.level + "\"\n"
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg, err := LoadConfig(configPath)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if cfg.LogLevel != tt.want {
				t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, tt.want)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

// TestMergeWithFlagsNil tests that nil flags leave the config untouched
func TestMergeWithFlagsNil(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeWithFlags(nil, nil, nil)

	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("MergeWithFlags(nil...) changed config: %+v", cfg)
	}
}

// TestConfigValidation tests validation of invalid values
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "invalid log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: true},
		{name: "empty output dir", mutate: func(c *Config) { c.OutputDir = "" }, wantErr: true},
		{name: "empty trial start marker", mutate: func(c *Config) { c.Belt.Markers.TrialStart = "" }, wantErr: true},
		{name: "no action markers", mutate: func(c *Config) { c.Belt.Markers.Actions = nil }, wantErr: true},
		{name: "empty score column", mutate: func(c *Config) { c.Belt.ScoreColumn = "" }, wantErr: true},
		{name: "zero segments", mutate: func(c *Config) { c.Belt.Segments = 0 }, wantErr: true},
		{name: "negative expected trials", mutate: func(c *Config) { c.Belt.ExpectedTrials = -1 }, wantErr: true},
		{name: "expected trials check disabled", mutate: func(c *Config) { c.Belt.ExpectedTrials = 0 }, wantErr: false},
		{name: "unlabelled category", mutate: func(c *Config) { c.Belt.Categories = []Category{{Alias: "x"}} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAliasFor tests category alias lookup
func TestAliasFor(t *testing.T) {
	b := DefaultConfig().Belt

	if got := b.AliasFor("pinkballoon"); got != "pink" {
		t.Errorf("AliasFor(pinkballoon) = %q, want %q", got, "pink")
	}
	if got := b.AliasFor("greenballoon"); got != "greenballoon" {
		t.Errorf("AliasFor(greenballoon) = %q, want label fallback", got)
	}
	want := []string{"blueballoon", "pinkballoon", "orangeballoon"}
	if got := b.CategoryLabels(); !reflect.DeepEqual(got, want) {
		t.Errorf("CategoryLabels() = %v, want %v", got, want)
	}
}
