package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration sourced from env vars. The defaults
// match the demo deployment: port 3000, a shared admin access code, and CORS
// open to every origin.
type Config struct {
	Port        string   `env:"PORT" envDefault:"3000"`
	AdminCode   string   `env:"ADMIN_ACCESS_CODE" envDefault:"TimeAbsolut434345@"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}
