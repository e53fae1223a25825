package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/birdayz/kflow/kchan"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config configures the demo pipeline.
type Config struct {
	// Samples per tone source. A negative count runs until interrupted.
	Samples    int     `yaml:"samples"`
	SampleRate float64 `yaml:"sample_rate"`
	LeftHz     float64 `yaml:"left_hz"`
	RightHz    float64 `yaml:"right_hz"`

	Gain  float64 `yaml:"gain"`
	Limit float64 `yaml:"limit"`
	// Window is the number of samples per peak.
	Window int `yaml:"window"`
	// Capacity of every edge, -1 for unbounded.
	Capacity int `yaml:"capacity"`

	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
}

func DefaultConfig() Config {
	return Config{
		Samples:    48000,
		SampleRate: 48000,
		LeftHz:     440,
		RightHz:    3,
		Gain:       1,
		Window:     4800,
		Capacity:   64,
		LogLevel:   "info",
	}
}

// LoadConfig reads path over the defaults. Keys missing from the file keep
// their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs error
	if c.Samples == 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: samples must not be 0", ErrInvalidConfig))
	}
	if c.SampleRate <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: sample_rate must be positive", ErrInvalidConfig))
	}
	if c.Window < 1 {
		errs = multierr.Append(errs, fmt.Errorf("%w: window must be at least 1", ErrInvalidConfig))
	}
	if c.Capacity < kchan.Unbounded {
		errs = multierr.Append(errs, fmt.Errorf("%w: capacity must be -1 or more", ErrInvalidConfig))
	}
	if c.Limit < 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: limit must not be negative", ErrInvalidConfig))
	}
	return errs
}
