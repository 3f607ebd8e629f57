package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// TelemetryConfig controls the JSONL event stream.
type TelemetryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Config holds all runtime configuration for a neo invocation.
// Values are populated from .neo.yaml, NEO_* env vars, and CLI flags.
type Config struct {
	NEOsPath     string          `mapstructure:"neos_path"`
	CADPath      string          `mapstructure:"cad_path"`
	ProfilesPath string          `mapstructure:"profiles_path"`
	Limit        int             `mapstructure:"limit"`
	Verbose      bool            `mapstructure:"verbose"`
	Telemetry    TelemetryConfig `mapstructure:"telemetry"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("neos_path", "data/neos.csv")
	viper.SetDefault("cad_path", "data/cad.json")
	viper.SetDefault("profiles_path", ".neo/profiles.toml")
	viper.SetDefault("limit", 0)
	viper.SetDefault("verbose", false)
	viper.SetDefault("telemetry.enabled", true)
	viper.SetDefault("telemetry.path", ".neo/telemetry.jsonl")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.Limit < 0 {
		return Config{}, fmt.Errorf("config: limit must not be negative, got %d", cfg.Limit)
	}
	return cfg, nil
}
