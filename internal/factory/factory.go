package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/buitransport/internal/dependencies/clock"
	"github.com/mcoot/buitransport/internal/gateway"
	"github.com/mcoot/buitransport/internal/services/session"
	"github.com/mcoot/buitransport/internal/storage"
	"github.com/mcoot/buitransport/internal/storage/memory"
	redisstorage "github.com/mcoot/buitransport/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage holds every browser's credential
	Storage storage.Storage

	// External dependencies
	Clock   clock.Clock
	Gateway *gateway.Client

	Logger *slog.Logger

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Gateway configures the REST API client
	// If BaseURL is empty, gateway.DefaultConfig() is used
	Gateway gateway.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var (
		store   storage.Storage
		closers []io.Closer
	)
	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	gwCfg := cfg.Gateway
	if gwCfg.BaseURL == "" {
		gwCfg = gateway.DefaultConfig()
	}

	app := newWithDependencies(store, clock.New(), gateway.New(gwCfg), logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, api *gateway.Client, logger *slog.Logger) *App {
	return &App{
		Storage: store,
		Clock:   clk,
		Gateway: api,
		Logger:  logger,
	}
}

// Session creates the session store of one browser. It starts Unknown;
// callers run Initialize.
func (a *App) Session(clientID storage.ClientID) *session.Store {
	return session.New(storage.Scoped(a.Storage, clientID), a.Gateway, a.Clock, a.Logger)
}

// Close releases backend connections
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
