package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/maxlift/internal/checksum"
)

// setupSQLite opens a temporary database with the given driver.
func setupSQLite(t *testing.T, driver string) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), driver)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLite_Drivers(t *testing.T) {
	for _, driver := range []string{DriverCGO, DriverPure} {
		t.Run(driver, func(t *testing.T) {
			db := setupSQLite(t, driver)
			ctx := context.Background()

			_, ok, err := db.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, db.Set(ctx, "k", []byte("v1")))
			require.NoError(t, db.Set(ctx, "k", []byte("v2")))

			got, ok, err := db.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v2", string(got))

			cs, err := db.Checksum(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, checksum.Sum([]byte("v2")), cs)

			require.NoError(t, db.Delete(ctx, "k"))
			_, ok, err = db.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSQLite_UnknownDriver(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "x.db"), "postgres")
	assert.Error(t, err)
}

func TestSQLite_SetBatch(t *testing.T) {
	db := setupSQLite(t, DriverCGO)
	ctx := context.Background()

	err := SetAll(ctx, db, []Entry{
		{Key: "a", Value: []byte("1")},
		{Key: "b", Value: []byte("2")},
	})
	require.NoError(t, err)

	a, _, err := db.Get(ctx, "a")
	require.NoError(t, err)
	b, _, err := db.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "1", string(a))
	assert.Equal(t, "2", string(b))
}

func TestSQLite_SetBatchCancelledLeavesNothing(t *testing.T) {
	db := setupSQLite(t, DriverCGO)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := db.SetBatch(ctx, []Entry{{Key: "a", Value: []byte("1")}})
	require.Error(t, err)

	_, ok, err := db.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", in))
	in[0] = 'x'

	out, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(out))

	out[0] = 'y'
	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestSetAll_FallsBackToSequentialWrites(t *testing.T) {
	s := tempDataDir(t)
	ctx := context.Background()

	require.NoError(t, SetAll(ctx, s, []Entry{
		{Key: "a", Value: []byte("1")},
		{Key: "b", Value: []byte("2")},
	}))
	b, ok, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", string(b))

	err = SetAll(ctx, s, []Entry{
		{Key: "c", Value: []byte("3")},
		{Key: "../bad", Value: []byte("4")},
		{Key: "d", Value: []byte("5")},
	})
	require.Error(t, err)
	_, ok, _ = s.Get(ctx, "d")
	assert.False(t, ok, "writes after a failure must not run")
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	p, err := Open(Options{Backend: BackendFile, Path: filepath.Join(dir, "data")})
	require.NoError(t, err)
	assert.IsType(t, &FS{}, p)
	require.NoError(t, p.Close())

	p, err = Open(Options{Backend: BackendSQLite, Path: filepath.Join(dir, "db", "maxlift.db"), Driver: DriverPure})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, p)
	require.NoError(t, p.Close())

	p, err = Open(Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, p)

	_, err = Open(Options{Backend: "redis"})
	assert.Error(t, err)
}
