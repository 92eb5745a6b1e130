package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Chart    ChartConfig    `yaml:"chart" envconfig:"CHART"`
	Reports  ReportsConfig  `yaml:"reports" envconfig:"REPORTS"`
}

// DatabaseConfig locates the price record database
type DatabaseConfig struct {
	Path string `yaml:"path" envconfig:"PATH"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// ChartConfig contains calculation defaults for chart builds
type ChartConfig struct {
	// LookbackDays is the default window span when no start date is given.
	LookbackDays int `yaml:"lookback_days" envconfig:"LOOKBACK_DAYS"`
	// DefaultCurrency is the currency code used when a run names none
	// (1 hryvnia, 2 dollar, 3 euro).
	DefaultCurrency int `yaml:"default_currency" envconfig:"DEFAULT_CURRENCY"`
	// MissingPolicy is "skip" or "fail" for composite categories without
	// records.
	MissingPolicy string `yaml:"missing_policy" envconfig:"MISSING_POLICY"`
}

// ReportsConfig contains report output configuration
type ReportsConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR"`
}

// Load loads configuration with the precedence env > file > defaults.
// Defaults live in Default, not in struct tags, so a config file can
// override them without being clobbered by tag defaults.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables override file values
	if err := envconfig.Process("MPI", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFromFile overlays values from a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Reports.Dir == "" {
		return fmt.Errorf("reports directory must not be empty")
	}
	if c.Chart.LookbackDays <= 0 {
		return fmt.Errorf("chart lookback days must be positive, got %d", c.Chart.LookbackDays)
	}
	if c.Chart.DefaultCurrency < 1 || c.Chart.DefaultCurrency > 3 {
		return fmt.Errorf("chart default currency must be 1, 2 or 3, got %d", c.Chart.DefaultCurrency)
	}

	switch c.Chart.MissingPolicy {
	case "skip", "fail":
	default:
		return fmt.Errorf("chart missing policy must be skip or fail, got %q", c.Chart.MissingPolicy)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging level must be debug, info, warn or error, got %q", c.Logging.Level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output != "console" && c.Logging.Output != "file" && c.Logging.Output != "both" {
		c.Logging.Output = "console"
	}
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv("MPI_CONFIG"); path != "" {
		return path
	}

	// Check for config file in common locations
	locations := []string{
		"mpi.yaml",
		"configs/mpi.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "data/prices.db",
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "json",
			Output:      "console",
			FilePath:    "logs/app.log",
			Development: false,
		},
		Chart: ChartConfig{
			LookbackDays:    7,
			DefaultCurrency: 1,
			MissingPolicy:   "skip",
		},
		Reports: ReportsConfig{
			Dir: "reports",
		},
	}
}
