// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel        string `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFormat       string `mapstructure:"LOG_FORMAT" validate:"oneof=console json"`
	LevelTimeBudget int    `mapstructure:"LEVEL_TIME_BUDGET" validate:"gte=1"`
	TurnCost        int    `mapstructure:"TURN_COST" validate:"gte=1"`
	Pacing          string `mapstructure:"PACING" validate:"oneof=real fast none"`
	LevelsFile      string `mapstructure:"LEVELS_FILE"`
	YesToken        string `mapstructure:"YES_TOKEN" validate:"required"`
	ConfirmLevels   bool   `mapstructure:"CONFIRM_LEVELS"`
	MetricsFile     string `mapstructure:"METRICS_FILE"`
}

var keys = []string{
	"LOG_LEVEL",
	"LOG_FORMAT",
	"LEVEL_TIME_BUDGET",
	"TURN_COST",
	"PACING",
	"LEVELS_FILE",
	"YES_TOKEN",
	"CONFIRM_LEVELS",
	"METRICS_FILE",
}

// Load reads configuration from the environment, with .env as a fallback.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path. A missing file is fine.
func LoadFile(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LEVEL_TIME_BUDGET", 60)
	v.SetDefault("TURN_COST", 5)
	v.SetDefault("PACING", "real")
	v.SetDefault("LEVELS_FILE", "")
	v.SetDefault("YES_TOKEN", "sí")
	v.SetDefault("CONFIRM_LEVELS", false)
	v.SetDefault("METRICS_FILE", "")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// The env file is optional; any other read failure is reported.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks that every setting is in range.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
