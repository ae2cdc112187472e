// Package config loads service configuration from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const minTokenSecretLength = 32

// Config is the full service configuration, parsed from environment
// variables. The .env file, if any, is loaded by main before parsing.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Session  SessionConfig
	App      AppConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type UpstreamConfig struct {
	// BaseURL serves both the identity endpoint and the people directory.
	BaseURL string        `env:"UPSTREAM_BASE_URL" envDefault:"https://dummyjson.com"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
}

type SessionConfig struct {
	// TokenSecret signs the browser session cookie. When unset, a random
	// per-process secret is generated: sessions do not outlive the process
	// anyway, so an ephemeral key is the coherent default.
	TokenSecret string        `env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"12h"`
}

type AppConfig struct {
	PageSize        int `env:"PAGE_SIZE" envDefault:"10"`
	MetricsPoolSize int `env:"METRICS_POOL_SIZE" envDefault:"30"`
	LoginRatePerSec int `env:"LOGIN_RATE_PER_SEC" envDefault:"2"`
	LoginRateBurst  int `env:"LOGIN_RATE_BURST" envDefault:"5"`
}

// Load parses and validates the configuration.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Session.TokenSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
		cfg.Session.TokenSecret = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL must not be empty")
	}
	if len(c.Session.TokenSecret) < minTokenSecretLength {
		return fmt.Errorf("TOKEN_SECRET must be at least %d characters", minTokenSecretLength)
	}
	if c.Session.TokenTTL <= 0 {
		return fmt.Errorf("SESSION_TOKEN_TTL must be positive")
	}
	if c.App.PageSize < 1 || c.App.PageSize > 100 {
		return fmt.Errorf("PAGE_SIZE must be within [1,100]")
	}
	if c.App.LoginRatePerSec < 1 || c.App.LoginRateBurst < 1 {
		return fmt.Errorf("login rate limit values must be positive")
	}
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
