package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppAddr         string        `envconfig:"APP_ADDR" default:":8080"`
	SQLitePath      string        `envconfig:"SQLITE_PATH" default:"kasir.db"`
	MigrationsDir   string        `envconfig:"MIGRATIONS_DIR" default:""`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"2s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
