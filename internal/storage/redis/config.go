package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// CredentialTTL bounds how long an idle client's credential is kept.
	// Every save refreshes it. Zero keeps credentials until deleted.
	CredentialTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		CredentialTTL: 7 * 24 * time.Hour,
	}
}
