// Package kv defines the key-value medium the record store persists into.
package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Provider is the interface for a persistent key-value medium.
type Provider interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the provider.
	Close() error
}

// Entry is a single key/value pair of a batch write.
type Entry struct {
	Key   string
	Value []byte
}

// Batcher is implemented by providers that can write several keys as one
// unit: either all entries are stored or none are.
type Batcher interface {
	SetBatch(ctx context.Context, entries []Entry) error
}

// SetAll writes entries through p. Providers implementing Batcher write them
// as one unit; others get one Set per entry in order, stopping at the first
// failure.
func SetAll(ctx context.Context, p Provider, entries []Entry) error {
	if b, ok := p.(Batcher); ok {
		return b.SetBatch(ctx, entries)
	}
	for _, e := range entries {
		if err := p.Set(ctx, e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// Backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Path is the data directory for the file backend and the database file
	// for the SQLite backend. Ignored by the memory backend.
	Path string
	// Driver is the database/sql driver name for the SQLite backend.
	Driver string
}

// Open creates the provider described by opts, creating directories as needed.
func Open(opts Options) (Provider, error) {
	switch opts.Backend {
	case BackendFile, "":
		if err := os.MkdirAll(opts.Path, 0o755); err != nil {
			return nil, fmt.Errorf("kv: create data dir: %w", err)
		}
		return NewFS(opts.Path)
	case BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("kv: create database dir: %w", err)
		}
		return OpenSQLite(opts.Path, opts.Driver)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("kv: unknown backend %q", opts.Backend)
	}
}
