package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) LoadCredential(ctx context.Context, clientID storage.ClientID) (model.Credential, error) {
	fields, err := s.client.HGetAll(ctx, credentialKey(clientID)).Result()
	if err != nil {
		return model.Credential{}, err
	}

	cred := model.Credential{
		AccessToken:  fields[fieldAccessToken],
		RefreshToken: fields[fieldRefreshToken],
	}
	if cred.IsZero() {
		return model.Credential{}, model.ErrCredentialNotFound
	}
	return cred, nil
}

func (s *Storage) SaveCredential(ctx context.Context, clientID storage.ClientID, cred model.Credential) error {
	key := credentialKey(clientID)

	// Both fields and the TTL land together or not at all
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldAccessToken, cred.AccessToken,
			fieldRefreshToken, cred.RefreshToken,
		)
		if s.cfg.CredentialTTL > 0 {
			pipe.Expire(ctx, key, s.cfg.CredentialTTL)
		}
		return nil
	})
	return err
}

func (s *Storage) DeleteCredential(ctx context.Context, clientID storage.ClientID) error {
	return s.client.Del(ctx, credentialKey(clientID)).Err()
}

func (s *Storage) DeleteCredentialIf(ctx context.Context, clientID storage.ClientID, cred model.Credential) (bool, error) {
	key := credentialKey(clientID)
	deleted := false

	// WATCH aborts the delete if another client saves between the read and EXEC
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		fields, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(fields) == 0 || fields[fieldAccessToken] != cred.AccessToken || fields[fieldRefreshToken] != cred.RefreshToken {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		if err == nil {
			deleted = true
		}
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return deleted, err
}
