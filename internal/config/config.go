// Package config loads the web server's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/buitransport/internal/factory"
	"github.com/mcoot/buitransport/internal/gateway"
	redisstorage "github.com/mcoot/buitransport/internal/storage/redis"
)

// Config is the web server configuration
type Config struct {
	APIBaseURL      string        `env:"BT_API_BASE_URL" envDefault:"http://localhost:8000/api"`
	APITimeout      time.Duration `env:"BT_API_TIMEOUT" envDefault:"15s"`
	HTTPPort        int           `env:"BT_HTTP_PORT" envDefault:"8080"`
	StorageType     string        `env:"BT_STORAGE_TYPE" envDefault:"memory"`
	RedisURL        string        `env:"BT_REDIS_URL"`
	CredentialTTL   time.Duration `env:"BT_CREDENTIAL_TTL" envDefault:"168h"`
	SessionInitWait time.Duration `env:"BT_SESSION_INIT_WAIT" envDefault:"3s"`
	StaticDir       string        `env:"BT_STATIC_DIR"`
	CookieSecure    bool          `env:"BT_COOKIE_SECURE" envDefault:"false"`
	LogLevel        slog.Level    `env:"BT_LOG_LEVEL" envDefault:"INFO"`
}

// Load reads the configuration from the process environment
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that depend on each other
func (c Config) Validate() error {
	switch c.StorageType {
	case factory.StorageTypeMemory:
	case factory.StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("BT_REDIS_URL required when BT_STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid BT_STORAGE_TYPE %q: must be 'memory' or 'redis'", c.StorageType)
	}
	if c.APIBaseURL == "" {
		return errors.New("BT_API_BASE_URL must not be empty")
	}
	if c.SessionInitWait <= 0 {
		return errors.New("BT_SESSION_INIT_WAIT must be positive")
	}
	return nil
}

// Gateway returns the API client settings
func (c Config) Gateway() gateway.Config {
	cfg := gateway.DefaultConfig()
	cfg.BaseURL = c.APIBaseURL
	if c.APITimeout > 0 {
		cfg.Timeout = c.APITimeout
	}
	return cfg
}

// Factory returns the application factory settings
func (c Config) Factory(logger *slog.Logger) factory.Config {
	return factory.Config{
		Logger:      logger,
		StorageType: c.StorageType,
		RedisConfig: c.Redis(),
		Gateway:     c.Gateway(),
	}
}

// Redis returns the redis backend settings, or nil for other backends
func (c Config) Redis() *redisstorage.Config {
	if c.StorageType != factory.StorageTypeRedis {
		return nil
	}
	cfg := redisstorage.DefaultConfig()
	cfg.URL = c.RedisURL
	cfg.CredentialTTL = c.CredentialTTL
	return &cfg
}
