// Package kvstore persists small string values by key. It stands in for the
// browser's localStorage: the credential store keeps its token and user here.
package kvstore

import (
	"context"

	"github.com/jrsteele09/go-ukci-client/internal/config"
	"github.com/jrsteele09/go-ukci-client/internal/errors"
	"github.com/redis/go-redis/v9"
)

// Store defines string key-value persistence.
type Store interface {
	// Get returns the value for key. found is false when the key does not exist.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// SetMany writes every pair as one unit: a concurrent Get observes either
	// all of the new values or none of them.
	SetMany(ctx context.Context, values map[string]string) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// FromConfig builds the Store selected by storage.backend.
func FromConfig(cfg config.StorageConfig) (Store, error) {
	switch cfg.GetStorageBackend() {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile:
		return NewFileStore(cfg.GetStoragePath()), nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.GetRedisAddr(),
			DB:   cfg.GetRedisDB(),
		})
		return NewRedisStore(client, cfg.GetRedisPrefix()), nil
	default:
		return nil, errors.Wrapf(errors.ErrUnknownBackend, "[kvstore FromConfig] %q", cfg.GetStorageBackend())
	}
}
