// Package testutil provides shared test helpers for setting up providers and stores.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/starford/maxlift/internal/kv"
	"github.com/starford/maxlift/internal/records"
)

// Backends lists every provider configuration tests should cover.
var Backends = []kv.Options{
	{Backend: kv.BackendMemory},
	{Backend: kv.BackendFile},
	{Backend: kv.BackendSQLite, Driver: kv.DriverCGO},
	{Backend: kv.BackendSQLite, Driver: kv.DriverPure},
}

// BackendName returns a subtest name for opts.
func BackendName(opts kv.Options) string {
	if opts.Driver != "" {
		return opts.Backend + "-" + opts.Driver
	}
	return opts.Backend
}

// TestProvider opens a provider for opts under a temporary directory that is
// automatically cleaned up.
func TestProvider(t *testing.T, opts kv.Options) kv.Provider {
	t.Helper()
	switch opts.Backend {
	case kv.BackendSQLite:
		opts.Path = filepath.Join(t.TempDir(), "maxlift.db")
	default:
		opts.Path = t.TempDir()
	}
	p, err := kv.Open(opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

// TestDataDir creates a temporary data directory with a file provider.
func TestDataDir(t *testing.T) (string, *kv.FS) {
	t.Helper()
	dir := t.TempDir()
	fs, err := kv.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, fs
}

// TestStore creates a record store over an in-memory provider.
func TestStore(t *testing.T, opts ...records.Option) *records.Store {
	t.Helper()
	return records.New(TestProvider(t, kv.Options{Backend: kv.BackendMemory}), opts...)
}
