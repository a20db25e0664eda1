// Package badger provides a Badger-based implementation of the profile
// store.
package badger

import (
	"context"
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/yukiacerium/socialmem/internal/store"
)

// Config holds configuration for the Badger store.
type Config struct {
	Path       string
	SyncWrites bool
	// InMemory skips the value log on disk entirely. Used in tests.
	InMemory bool
}

// Store implements store.ProfileStore using Badger.
type Store struct {
	db *badgerdb.DB
}

// Open opens the Badger database described by cfg.
func Open(cfg Config) (*Store, error) {
	opts := badgerdb.DefaultOptions(cfg.Path)
	opts.SyncWrites = cfg.SyncWrites
	opts = opts.WithLogger(nil)
	if cfg.InMemory {
		opts = opts.WithInMemory(true).WithDir("").WithValueDir("")
	}

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, &store.UnavailableError{Cause: err}
	}
	return &Store{db: db}, nil
}

func profileKey(userKey string) []byte {
	return []byte("profile:" + userKey)
}

// Load returns the blob for userKey.
func (s *Store) Load(ctx context.Context, userKey string) ([]byte, error) {
	var blob []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(profileKey(userKey))
		if err != nil {
			if err == badgerdb.ErrKeyNotFound {
				return &store.NotFoundError{Key: userKey}
			}
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if store.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("load profile %s: %w", userKey, err)
	}
	return blob, nil
}

// Save replaces the blob for userKey.
func (s *Store) Save(ctx context.Context, userKey string, blob []byte) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(profileKey(userKey), blob)
	})
	if err != nil {
		return fmt.Errorf("save profile %s: %w", userKey, err)
	}
	return nil
}

// Close closes the Badger database.
func (s *Store) Close() error {
	return s.db.Close()
}
