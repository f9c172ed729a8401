package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/trialstats/internal/timeline"
)

// Category maps a trial category label to the short alias used in output keys
type Category struct {
	// Label is the value found in the category column (e.g. "blueballoon")
	Label string `yaml:"label"`

	// Alias prefixes the per-category output keys (e.g. "blue" -> "blue_score")
	Alias string `yaml:"alias"`
}

// BeltConfig represents BELT (balloon task) analysis configuration
type BeltConfig struct {
	// Markers are the event log messages that drive trial reconstruction
	Markers timeline.Markers `yaml:"markers"`

	// CategoryColumn holds the balloon color condition
	CategoryColumn string `yaml:"category_column"`

	// ScoreColumn holds the balloon score; zero marks a popped balloon
	ScoreColumn string `yaml:"score_column"`

	// LoadColumn holds the load size used for the load-size breakdown
	LoadColumn string `yaml:"load_column"`

	// LoadCategory restricts the load-size breakdown to one category
	LoadCategory string `yaml:"load_category"`

	// Categories lists the categories tallied per segment, in output order
	Categories []Category `yaml:"categories"`

	// ExpectedTrials is the trial count of a complete session (0 = no check)
	ExpectedTrials int `yaml:"expected_trials"`

	// Segments is the number of positional parts for early vs. late comparison
	Segments int `yaml:"segments"`
}

// NBackConfig represents N-back analysis configuration
type NBackConfig struct {
	// SkipTrialType is the reference trial_type removed before joining
	SkipTrialType string `yaml:"skip_trial_type"`

	// InstructionSuffix marks instruction screens dropped from the join
	InstructionSuffix string `yaml:"instruction_suffix"`
}

// Config represents trialstats configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory for run logs (empty disables file logging)
	LogDir string `yaml:"log_dir"`

	// OutputDir is the directory where summary files are written
	OutputDir string `yaml:"output_dir"`

	// Belt contains BELT analysis configuration
	Belt BeltConfig `yaml:"belt"`

	// NBack contains N-back analysis configuration
	NBack NBackConfig `yaml:"nback"`
}

// DefaultConfig returns a Config with the values used by the lab's task files
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogDir:    "",
		OutputDir: ".",
		Belt: BeltConfig{
			Markers:        timeline.DefaultMarkers(),
			CategoryColumn: "imgroot",
			ScoreColumn:    "balloonscore",
			LoadColumn:     "maxpumps",
			LoadCategory:   "blueballoon",
			Categories: []Category{
				{Label: "blueballoon", Alias: "blue"},
				{Label: "pinkballoon", Alias: "pink"},
				{Label: "orangeballoon", Alias: "orange"},
			},
			ExpectedTrials: 54,
			Segments:       3,
		},
		NBack: NBackConfig{
			SkipTrialType:     "fix",
			InstructionSuffix: "back_instr.jpg",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Decoding onto the defaults keeps every key the file leaves out.
	// Lists present in the file replace the default list entirely.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.LogLevel = normalizeLevel(cfg.LogLevel)

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .trialstats/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".trialstats", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, logDir *string, outputDir *string) {
	if logLevel != nil {
		c.LogLevel = normalizeLevel(*logLevel)
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if outputDir != nil {
		c.OutputDir = *outputDir
	}
}

// normalizeLevel lets "WARN" or " Debug " pass validation the same way the
// loggers accept them.
func normalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}

// AliasFor returns the configured alias for a category label, or the label itself
func (b BeltConfig) AliasFor(label string) string {
	for _, c := range b.Categories {
		if c.Label == label && c.Alias != "" {
			return c.Alias
		}
	}
	return label
}

// CategoryLabels returns the configured category labels in order
func (b BeltConfig) CategoryLabels() []string {
	labels := make([]string, len(b.Categories))
	for i, c := range b.Categories {
		labels[i] = c.Label
	}
	return labels
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	b := c.Belt
	if b.Markers.TrialStart == "" {
		return fmt.Errorf("belt.markers.trial_start cannot be empty")
	}
	if len(b.Markers.Actions) == 0 {
		return fmt.Errorf("belt.markers.actions must list at least one action marker")
	}
	for _, col := range []struct{ key, value string }{
		{"belt.category_column", b.CategoryColumn},
		{"belt.score_column", b.ScoreColumn},
		{"belt.load_column", b.LoadColumn},
	} {
		if col.value == "" {
			return fmt.Errorf("%s cannot be empty", col.key)
		}
	}
	if b.Segments <= 0 {
		return fmt.Errorf("belt.segments must be > 0, got %d", b.Segments)
	}
	if b.ExpectedTrials < 0 {
		return fmt.Errorf("belt.expected_trials must be >= 0, got %d", b.ExpectedTrials)
	}
	for i, cat := range b.Categories {
		if cat.Label == "" {
			return fmt.Errorf("belt.categories[%d].label cannot be empty", i)
		}
	}

	return nil
}
