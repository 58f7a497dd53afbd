// Package config loads and validates the analysis configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete analysis configuration.
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Churn    ChurnConfig    `json:"churn" mapstructure:"churn"`
	Hotspots HotspotsConfig `json:"hotspots" mapstructure:"hotspots"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// AnalysisConfig controls scanning and per-file calculation.
type AnalysisConfig struct {
	// IgnoreDirs are directory names skipped during the scan.
	IgnoreDirs []string `json:"ignoreDirs" mapstructure:"ignoreDirs"`

	// Workers is the per-file worker count; 0 means one per CPU.
	Workers int `json:"workers" mapstructure:"workers"`
}

// ChurnConfig controls the git churn/ownership collector.
type ChurnConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// PeriodDays is the churn window: commits within the last N days.
	PeriodDays int `json:"periodDays" mapstructure:"periodDays"`

	// SignificantShare is the minimum share of a file's commits an
	// author needs to count as a significant author.
	SignificantShare float64 `json:"significantShare" mapstructure:"significantShare"`

	// CacheEnabled persists churn snapshots to the local database.
	CacheEnabled bool `json:"cacheEnabled" mapstructure:"cacheEnabled"`
}

// HotspotsConfig holds the risk tier boundaries (inclusive upper
// bounds; above highMax is critical).
type HotspotsConfig struct {
	LowMax    float64 `json:"lowMax" mapstructure:"lowMax"`
	MediumMax float64 `json:"mediumMax" mapstructure:"mediumMax"`
	HighMax   float64 `json:"highMax" mapstructure:"highMax"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Analysis: AnalysisConfig{
			IgnoreDirs: []string{".git", "node_modules", "vendor", "build", "dist", ".codehealth"},
			Workers:    0,
		},
		Churn: ChurnConfig{
			Enabled:          true,
			PeriodDays:       90,
			SignificantShare: 0.2,
			CacheEnabled:     true,
		},
		Hotspots: HotspotsConfig{
			LowMax:    25,
			MediumMax: 75,
			HighMax:   150,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .codehealth/config.json under
// repoRoot, falling back to defaults for anything unset. A missing
// file is not an error.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".codehealth"))

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.RepoRoot == "." || cfg.RepoRoot == "" {
		cfg.RepoRoot = repoRoot
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("repoRoot", d.RepoRoot)
	v.SetDefault("analysis.ignoreDirs", d.Analysis.IgnoreDirs)
	v.SetDefault("analysis.workers", d.Analysis.Workers)
	v.SetDefault("churn.enabled", d.Churn.Enabled)
	v.SetDefault("churn.periodDays", d.Churn.PeriodDays)
	v.SetDefault("churn.significantShare", d.Churn.SignificantShare)
	v.SetDefault("churn.cacheEnabled", d.Churn.CacheEnabled)
	v.SetDefault("hotspots.lowMax", d.Hotspots.LowMax)
	v.SetDefault("hotspots.mediumMax", d.Hotspots.MediumMax)
	v.SetDefault("hotspots.highMax", d.Hotspots.HighMax)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
}

// Save writes the configuration to .codehealth/config.json.
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".codehealth")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	if c.Churn.PeriodDays < 1 {
		return fmt.Errorf("churn.periodDays must be >= 1, got %d", c.Churn.PeriodDays)
	}
	if c.Churn.SignificantShare < 0 || c.Churn.SignificantShare > 1 {
		return fmt.Errorf("churn.significantShare must be in [0,1], got %v", c.Churn.SignificantShare)
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must be >= 0, got %d", c.Analysis.Workers)
	}
	h := c.Hotspots
	if !(h.LowMax < h.MediumMax && h.MediumMax < h.HighMax) {
		return fmt.Errorf("hotspot thresholds must be strictly increasing: %v, %v, %v",
			h.LowMax, h.MediumMax, h.HighMax)
	}
	return nil
}
