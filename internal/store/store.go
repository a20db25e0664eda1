// Package store defines the persistence boundary for social profiles: a
// keyed blob store with load/save semantics. The core serializes a whole
// profile to one blob per user; adapters only move bytes.
//
// Concurrent operations against the same user key race between Load and
// Save (last save wins). Adapters that need stronger guarantees must
// serialize per key themselves; the core does not lock.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ProfileStore is the adapter contract consumed by the engine.
type ProfileStore interface {
	// Load returns the blob for userKey, or a *NotFoundError if the user
	// has never been saved.
	Load(ctx context.Context, userKey string) ([]byte, error)

	// Save atomically replaces the blob for userKey.
	Save(ctx context.Context, userKey string, blob []byte) error

	// Close releases backend resources.
	Close() error
}

// NotFoundError indicates no profile exists for the key.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile not found: %s", e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// UnavailableError indicates the storage backend could not be reached or
// opened.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: %v", e.Cause)
}

func (e *UnavailableError) Unwrap() error { return e.Cause }
