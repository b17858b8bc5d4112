package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/starford/maxlift/internal/checksum"
)

// SQLite driver names.
const (
	DriverCGO  = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPure = "sqlite"  // modernc.org/sqlite
)

const kvSchemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	checksum   TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

const upsertSQL = `
	INSERT INTO kv (key, value, checksum, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
		value      = excluded.value,
		checksum   = excluded.checksum,
		updated_at = excluded.updated_at
`

// SQLite implements Provider and Batcher on a single kv table.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path with the given driver
// and applies the schema. An empty driver selects DriverCGO.
func OpenSQLite(path, driver string) (*SQLite, error) {
	var dsn string
	switch driver {
	case DriverCGO, "":
		driver = DriverCGO
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	case DriverPure:
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	default:
		return nil, fmt.Errorf("kv: unknown sqlite driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("kv: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("kv: ping: %w", err)
	}
	if _, err := conn.Exec(kvSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("kv: apply schema: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

// Get returns the stored value for key.
func (db *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := db.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv: get %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts a single key.
func (db *SQLite) Set(ctx context.Context, key string, value []byte) error {
	if _, err := db.conn.ExecContext(ctx, upsertSQL, key, value, checksum.Sum(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("kv: set %s: %w", key, err)
	}
	return nil
}

// SetBatch upserts all entries within one transaction.
func (db *SQLite) SetBatch(ctx context.Context, entries []Entry) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("kv: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		return fmt.Errorf("kv: prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Key, e.Value, checksum.Sum(e.Value), now); err != nil {
			return fmt.Errorf("kv: set %s: %w", e.Key, err)
		}
	}
	return tx.Commit()
}

// Delete removes key.
func (db *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv: delete %s: %w", key, err)
	}
	return nil
}

// Checksum returns the stored checksum for key, or "" if absent.
func (db *SQLite) Checksum(ctx context.Context, key string) (string, error) {
	var cs string
	err := db.conn.QueryRowContext(ctx, `SELECT checksum FROM kv WHERE key = ?`, key).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("kv: checksum %s: %w", key, err)
	}
	return cs, nil
}

// Close closes the underlying database connection.
func (db *SQLite) Close() error {
	return db.conn.Close()
}

var (
	_ Provider = (*SQLite)(nil)
	_ Batcher  = (*SQLite)(nil)
)
