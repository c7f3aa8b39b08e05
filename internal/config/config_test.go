package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/buitransport/internal/factory"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, factory.StorageTypeMemory, cfg.StorageType)
	assert.Equal(t, 7*24*time.Hour, cfg.CredentialTTL)
	assert.Equal(t, 3*time.Second, cfg.SessionInitWait)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.CookieSecure)
	assert.Nil(t, cfg.Redis())
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"BT_API_BASE_URL":      "https://api.example.com/api",
		"BT_HTTP_PORT":         "9090",
		"BT_STORAGE_TYPE":      "redis",
		"BT_REDIS_URL":         "redis://cache:6379/1",
		"BT_CREDENTIAL_TTL":    "24h",
		"BT_SESSION_INIT_WAIT": "500ms",
		"BT_API_TIMEOUT":       "5s",
		"BT_COOKIE_SECURE":     "true",
		"BT_LOG_LEVEL":         "DEBUG",
	})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 500*time.Millisecond, cfg.SessionInitWait)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)

	gw := cfg.Gateway()
	assert.Equal(t, "https://api.example.com/api", gw.BaseURL)
	assert.Equal(t, 5*time.Second, gw.Timeout)

	redis := cfg.Redis()
	require.NotNil(t, redis)
	assert.Equal(t, "redis://cache:6379/1", redis.URL)
	assert.Equal(t, 24*time.Hour, redis.CredentialTTL)
}

func TestLoadFromRejectsInvalidSettings(t *testing.T) {
	tests := map[string]map[string]string{
		"redis without url": {"BT_STORAGE_TYPE": "redis"},
		"unknown storage":   {"BT_STORAGE_TYPE": "postgres"},
		"bad port":          {"BT_HTTP_PORT": "eighty"},
		"bad duration":      {"BT_SESSION_INIT_WAIT": "soon"},
		"zero wait":         {"BT_SESSION_INIT_WAIT": "0s"},
	}

	for name, environ := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(environ)
			assert.Error(t, err)
		})
	}
}
