// Package storage provides the key-value blob stores the cart persists into.
package storage

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Storage gets and sets string blobs addressed by string keys.
type Storage interface {
	// Get returns the value stored under key. found is false when the key
	// has never been set or was removed.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open returns the backend named by backend. path is the SQLite database file
// and is ignored by the memory backend.
func Open(backend, path string) (Storage, error) {
	switch backend {
	case "", BackendSQLite:
		return OpenSQLite(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage.Open: unknown backend %q (want %s or %s)", backend, BackendSQLite, BackendMemory)
	}
}
