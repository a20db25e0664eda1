// Package redis provides a Redis-backed implementation of the profile
// store. Profiles live forever in Redis; retention is per memory record
// inside the blob, not per key.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yukiacerium/socialmem/internal/store"
)

const defaultPrefix = "socialmem:profile:"

// Config holds connection settings for the Redis store.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces profile keys. Defaults to "socialmem:profile:".
	Prefix string
}

// Store implements store.ProfileStore on a Redis client.
type Store struct {
	client *goredis.Client
	prefix string
}

// Open connects to Redis and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, &store.UnavailableError{Cause: err}
	}
	return NewWithClient(client, cfg.Prefix), nil
}

// NewWithClient wraps an existing client. Used by tests (miniredis) and by
// callers that manage their own connection pool.
func NewWithClient(client *goredis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(userKey string) string {
	return s.prefix + userKey
}

// Load returns the blob for userKey.
func (s *Store) Load(ctx context.Context, userKey string) ([]byte, error) {
	blob, err := s.client.Get(ctx, s.key(userKey)).Bytes()
	if err == goredis.Nil {
		return nil, &store.NotFoundError{Key: userKey}
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", userKey, err)
	}
	return blob, nil
}

// Save replaces the blob for userKey. No TTL: memory expiry is handled
// lazily inside the profile.
func (s *Store) Save(ctx context.Context, userKey string, blob []byte) error {
	if err := s.client.Set(ctx, s.key(userKey), blob, 0).Err(); err != nil {
		return fmt.Errorf("save profile %s: %w", userKey, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
