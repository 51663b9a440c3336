// Package config loads sessionctl configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains the client configuration parameters.
type Config struct {
	// APIBaseURL is the remote auth service root.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	// CachePath is the bbolt file holding the session signals.
	CachePath string `env:"CACHE_PATH" envDefault:"session.db"`
	// HTTPTimeout bounds every request to the auth service.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	// GuardReset bounds how long a transition can suppress routing.
	GuardReset time.Duration `env:"GUARD_RESET" envDefault:"500ms"`
	LogLevel   int           `env:"LOG_LEVEL" envDefault:"0"`
}

// New loads configuration from SESSIONKIT_-prefixed environment variables.
func New() (*Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "SESSIONKIT_"}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
