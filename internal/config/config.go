// Package config holds the segmentation settings shared by the CLI
// commands.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"
	"github.com/hack-pad/hackpadfs"

	"github.com/kittclouds/scenekitt/pkg/act"
	"github.com/kittclouds/scenekitt/pkg/scene"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SCENEKITT_"

// Config is the configuration surface. Zero values are replaced by
// Default before a file or environment is applied.
type Config struct {
	// InactivityThresholds are the constellation windows swept, short to long.
	InactivityThresholds []int  `yaml:"inactivity_thresholds" env:"INACTIVITY_THRESHOLDS" envSeparator:","`
	CharThreshold        int    `yaml:"char_threshold" env:"CHAR_THRESHOLD"`
	LocationThreshold    int    `yaml:"location_threshold" env:"LOCATION_THRESHOLD"`
	ActBudget            int    `yaml:"act_budget" env:"ACT_BUDGET"`
	Strict               bool   `yaml:"strict" env:"STRICT"`
	Database             string `yaml:"database" env:"DATABASE"`
	LogLevel             string `yaml:"log_level" env:"LOG_LEVEL"`
}

// Default returns the stock settings.
func Default() Config {
	return Config{
		InactivityThresholds: []int{25, 50, 100},
		CharThreshold:        3,
		LocationThreshold:    50,
		ActBudget:            act.DefaultBudget,
		LogLevel:             "info",
	}
}

// Load starts from Default, applies the YAML file at path when path is not
// empty, then SCENEKITT_* environment variables, and validates the result.
func Load(fsys hackpadfs.FS, path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := hackpadfs.ReadFile(fsys, path)
		if err != nil {
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ParseEnv applies SCENEKITT_* environment variables to target.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate fails on non-positive thresholds or budget.
func (c Config) Validate() error {
	var errs []error
	if len(c.InactivityThresholds) == 0 {
		errs = append(errs, fmt.Errorf("%w: no inactivity thresholds", scene.ErrInvalidThreshold))
	}
	for _, w := range c.InactivityThresholds {
		if w <= 0 {
			errs = append(errs, fmt.Errorf("%w: inactivity threshold %d", scene.ErrInvalidThreshold, w))
		}
	}
	if c.CharThreshold <= 0 {
		errs = append(errs, fmt.Errorf("%w: char threshold %d", scene.ErrInvalidThreshold, c.CharThreshold))
	}
	if c.LocationThreshold <= 0 {
		errs = append(errs, fmt.Errorf("%w: location threshold %d", scene.ErrInvalidThreshold, c.LocationThreshold))
	}
	if c.ActBudget <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", act.ErrInvalidBudget, c.ActBudget))
	}
	return errors.Join(errs...)
}
