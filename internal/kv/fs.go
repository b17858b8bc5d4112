package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/starford/maxlift/internal/checksum"
)

const (
	keyFileExt    = ".json"
	tmpFilePrefix = ".maxlift-tmp-"
)

// FS implements Provider with one JSON file per key in a data directory.
type FS struct {
	root string // absolute path to data directory

	mu sync.Mutex
	// written maps a key to the checksum of the last value this process
	// stored. An empty checksum means this process deleted the key.
	written map[string]string
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("kv: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("kv: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("kv: root is not a directory: %s", abs)
	}
	return &FS{root: abs, written: make(map[string]string)}, nil
}

// Root returns the absolute data directory.
func (f *FS) Root() string {
	return f.root
}

// keyPath maps a key to its file. Keys are restricted to a flat, safe
// alphabet so they can never escape the data directory.
func (f *FS) keyPath(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("kv: invalid key %q", key)
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return "", fmt.Errorf("kv: invalid key %q", key)
		}
	}
	return filepath.Join(f.root, key+keyFileExt), nil
}

// Get reads the file backing key.
func (f *FS) Get(_ context.Context, key string) ([]byte, bool, error) {
	p, err := f.keyPath(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv: read %s: %w", key, err)
	}
	return data, true, nil
}

// Set atomically writes value: tmp file → fsync → rename.
func (f *FS) Set(_ context.Context, key string, value []byte) error {
	p, err := f.keyPath(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.root, tmpFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("kv: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(value); err != nil {
		return fmt.Errorf("kv: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("kv: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("kv: close temp: %w", err)
	}

	// Record before the rename so the watcher never sees an unknown write.
	f.mu.Lock()
	prev, hadPrev := f.written[key]
	f.written[key] = checksum.Sum(value)
	f.mu.Unlock()

	if err := os.Rename(tmpName, p); err != nil {
		f.mu.Lock()
		if hadPrev {
			f.written[key] = prev
		} else {
			delete(f.written, key)
		}
		f.mu.Unlock()
		return fmt.Errorf("kv: rename: %w", err)
	}
	success = true
	return nil
}

// Delete removes the file backing key.
func (f *FS) Delete(_ context.Context, key string) error {
	p, err := f.keyPath(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.written[key] = ""
	f.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("kv: delete %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; FS holds no open handles between calls.
func (f *FS) Close() error {
	return nil
}

// ownState reports whether the file for key currently holds what this process
// last wrote (or is absent after this process deleted it).
func (f *FS) ownState(key string, data []byte, exists bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum, ok := f.written[key]
	if !ok {
		return false
	}
	if !exists {
		return sum == ""
	}
	return checksum.Matches(data, sum)
}

// keyFromFile returns the key a data-dir file name belongs to.
func keyFromFile(name string) (string, bool) {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || !strings.HasSuffix(base, keyFileExt) {
		return "", false
	}
	return strings.TrimSuffix(base, keyFileExt), true
}
