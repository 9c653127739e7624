// Package config loads server settings from the environment.
package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port               string `env:"PORT,                 default=8080"`
	DatabaseDSN        string `env:"DATABASE_DSN,         default=levelup.db"`
	JWTSecret          string `env:"JWT_SECRET,           default=dev-secret-change-me"`
	JWTExpirationHours int    `env:"JWT_EXPIRATION_HOURS, default=720"`
	LogLevel           string `env:"LOG_LEVEL,            default=info"`
	LogPretty          bool   `env:"LOG_PRETTY,           default=false"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
