// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Addr      string `env:"SOULSREQ_ADDR" envDefault:":8080" validate:"required"`
	DataDir   string `env:"SOULSREQ_DATA_DIR" envDefault:"data" validate:"required"`
	Presets   string `env:"SOULSREQ_PRESETS"` // optional YAML file replacing the built-in presets
	LogLevel  string `env:"SOULSREQ_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error"`
	LogFormat string `env:"SOULSREQ_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`

	CacheSize    int           `env:"SOULSREQ_CACHE_SIZE" envDefault:"8" validate:"gte=1"`
	CacheTTL     time.Duration `env:"SOULSREQ_CACHE_TTL" envDefault:"10m"`
	SessionCache int           `env:"SOULSREQ_SESSION_CACHE" envDefault:"1024" validate:"gte=1"`

	// Watch invalidates cached datasets when files in DataDir change.
	Watch bool `env:"SOULSREQ_WATCH" envDefault:"false"`
}

// Load reads an optional .env file, then the environment.
func Load(envFiles ...string) (*Config, error) {
	// Missing .env files are fine; real environment variables win anyway.
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
