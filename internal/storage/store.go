// Package storage provides the key-value persistence collaborator used by the
// pet and achievement engines. Documents are opaque JSON blobs grouped into
// named collections; the engines never see which backend is in use.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"typepet/internal/config"
	"typepet/internal/database"
)

// Collection names used by the engines
const (
	CollectionPetStates    = "pet_states"
	CollectionAchievements = "achievements"
)

// ErrNotFound is returned by Get when no document exists for the key
var ErrNotFound = errors.New("storage: document not found")

// Store is an asynchronous key-value store per logical collection
type Store interface {
	Get(ctx context.Context, collection, key string) ([]byte, error)
	Put(ctx context.Context, collection, key string, value []byte) error
	Delete(ctx context.Context, collection, key string) error
	Clear(ctx context.Context, collection string) error
	GetAll(ctx context.Context, collection string) (map[string][]byte, error)
	Close() error
}

// Open creates the store backend selected by the configuration
func Open(cfg *config.Config) (Store, error) {
	switch strings.ToLower(cfg.StorageBackend) {
	case "redis":
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword), nil
	case "database", "sql", "":
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(db)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
