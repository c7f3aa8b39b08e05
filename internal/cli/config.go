package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds CLI configuration. Flags override the environment.
type Config struct {
	APIBaseURL     string        `env:"BTC_API" envDefault:"http://localhost:8000/api"`
	CredentialFile string        `env:"BTC_CREDENTIAL_FILE"`
	Timeout        time.Duration `env:"BTC_TIMEOUT" envDefault:"15s"`
	Output         string        `env:"BTC_OUTPUT" envDefault:"text"`
	Verbose        bool
}

// DefaultConfig reads the environment, falling back to built-in defaults
func DefaultConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CredentialFile == "" {
		cfg.CredentialFile = defaultCredentialFile()
	}
	return cfg, nil
}

// Validate checks flag values that cobra cannot
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format %q: must be text or json", c.Output)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func defaultCredentialFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".btc", "credential.json")
	}
	return filepath.Join(home, ".btc", "credential.json")
}
