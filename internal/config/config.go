// Package config provides configuration defaults for catalog matching.
//
// There is no ambient global configuration: callers load or build a Config
// and pass the values into matcher construction explicitly. Default()
// carries the documented defaults used when no option is given.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultThresholdArcsec = 1.0
	DefaultAngularUnit     = "deg"
)

// Config holds matching defaults.
type Config struct {
	// ThresholdArcsec is the default sky-match acceptance threshold.
	ThresholdArcsec float64 `yaml:"threshold_arcsec"`
	// AngularUnit is the default unit for coordinate columns without
	// unit metadata.
	AngularUnit string `yaml:"angular_unit"`
	// RACandidates are the column names tried, in order, when
	// auto-detecting the right ascension column.
	RACandidates []string `yaml:"ra_candidates"`
	// DecCandidates are the column names tried, in order, when
	// auto-detecting the declination column.
	DecCandidates []string `yaml:"dec_candidates"`
}

// Default returns the configuration with default values.
func Default() Config {
	return Config{
		ThresholdArcsec: DefaultThresholdArcsec,
		AngularUnit:     DefaultAngularUnit,
		RACandidates:    []string{"ra", "RA"},
		DecCandidates:   []string{"DEC", "Dec", "dec"},
	}
}

// LoadFile loads configuration from a YAML file, filling unset fields
// with defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv applies XMATCH_* environment overrides to a configuration.
// Recognized variables: XMATCH_THRESHOLD_ARCSEC, XMATCH_ANGULAR_UNIT.
func FromEnv(cfg Config) Config {
	if v := os.Getenv("XMATCH_THRESHOLD_ARCSEC"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ThresholdArcsec = f
		}
	}
	if v := os.Getenv("XMATCH_ANGULAR_UNIT"); v != "" {
		cfg.AngularUnit = v
	}
	return cfg
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.ThresholdArcsec <= 0 {
		return fmt.Errorf("threshold_arcsec must be positive, got %g", c.ThresholdArcsec)
	}
	if len(c.RACandidates) == 0 {
		return fmt.Errorf("ra_candidates must not be empty")
	}
	if len(c.DecCandidates) == 0 {
		return fmt.Errorf("dec_candidates must not be empty")
	}
	return nil
}
