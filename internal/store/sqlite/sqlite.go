// Package sqlite provides a SQLite-backed implementation of the profile
// store: one row per user holding the serialized profile blob.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yukiacerium/socialmem/internal/store"
)

// Store implements store.ProfileStore on a SQLite database.
type Store struct {
	db   *sql.DB
	Path string
}

// DefaultPath returns the default database path: ~/.socialmem/socialmem.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".socialmem", "socialmem.db"), nil
}

// Open opens (or creates) the database at path, configures pragmas, and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &store.UnavailableError{Cause: err}
	}

	s := &Store{db: db, Path: path}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenMemory opens an in-memory database for testing.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, &store.UnavailableError{Cause: err}
	}

	s := &Store{db: db, Path: ":memory:"}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			user_key   TEXT PRIMARY KEY,
			blob       BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Load returns the blob for userKey.
func (s *Store) Load(ctx context.Context, userKey string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT blob FROM profiles WHERE user_key = ?`, userKey).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, &store.NotFoundError{Key: userKey}
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", userKey, err)
	}
	return blob, nil
}

// Save upserts the blob for userKey.
func (s *Store) Save(ctx context.Context, userKey string, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_key, blob, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_key) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at
	`, userKey, blob, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save profile %s: %w", userKey, err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
