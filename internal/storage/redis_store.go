package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "typepet"

// RedisStore persists documents in Redis, keyed as "typepet:{collection}:{key}"
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by a Redis server
func NewRedisStore(addr, password string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &RedisStore{client: client}
}

// NewRedisStoreWithClient creates a store over an existing client (used in tests)
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func docKey(collection, key string) string {
	return fmt.Sprintf("%s:%s:%s", redisKeyPrefix, collection, key)
}

// Get retrieves a single document
func (s *RedisStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, docKey(collection, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, key, err)
	}
	return value, nil
}

// Put inserts or replaces a document
func (s *RedisStore) Put(ctx context.Context, collection, key string, value []byte) error {
	if err := s.client.Set(ctx, docKey(collection, key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to put document %s/%s: %w", collection, key, err)
	}
	return nil
}

// Delete removes a document; deleting a missing document is not an error
func (s *RedisStore) Delete(ctx context.Context, collection, key string) error {
	if err := s.client.Del(ctx, docKey(collection, key)).Err(); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, key, err)
	}
	return nil
}

// Clear removes every document in a collection
func (s *RedisStore) Clear(ctx context.Context, collection string) error {
	keys, err := s.collectionKeys(ctx, collection)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear collection %s: %w", collection, err)
	}
	return nil
}

// GetAll retrieves every document in a collection keyed by document key
func (s *RedisStore) GetAll(ctx context.Context, collection string) (map[string][]byte, error) {
	keys, err := s.collectionKeys(ctx, collection)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("%s:%s:", redisKeyPrefix, collection)
	result := make(map[string][]byte, len(keys))
	for _, fullKey := range keys {
		value, err := s.client.Get(ctx, fullKey).Bytes()
		if errors.Is(err, redis.Nil) {
			// Deleted between KEYS and GET, skip
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read document %s: %w", fullKey, err)
		}
		result[strings.TrimPrefix(fullKey, prefix)] = value
	}
	return result, nil
}

func (s *RedisStore) collectionKeys(ctx context.Context, collection string) ([]string, error) {
	pattern := fmt.Sprintf("%s:%s:*", redisKeyPrefix, collection)
	keys, err := s.client.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}
	return keys, nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
