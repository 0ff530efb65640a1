// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. The roster lives in a two-column key/value table: one row per
// roster key, the value being the JSON-encoded list of students.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/students-roster/internal/config"
	"github.com/aanand-mishra/students-roster/internal/storage"
	"github.com/aanand-mishra/students-roster/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db  *sql.DB
	key string
}

// New opens the SQLite database at cfg.StoragePath, creates the kv table
// if it does not already exist, and returns a ready-to-use *SQLite that
// reads and writes the roster under cfg.StorageKey.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.StoragePath, cfg.StorageKey)
}

// Open is New without a config, for tools and tests.
func Open(path, key string) (*SQLite, error) {
	if key == "" {
		return nil, errors.New("sqlite.Open: empty storage key")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.Open: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent and safe to run on every
	// startup.
	//
	// Schema:
	//   key   : roster key, e.g. "crud_mahasiswa"
	//   value : JSON array of students
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open: create table: %w", err)
	}

	return &SQLite{Db: db, key: key}, nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// Load reads the roster blob and decodes it.
//
// sql.ErrNoRows (nothing saved yet) is translated into storage.ErrEmpty so
// the store can tell "first run" apart from a real failure.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Load() ([]types.Student, error) {
	stmt, err := s.Db.Prepare("SELECT value FROM kv WHERE key = ? LIMIT 1")
	if err != nil {
		return nil, fmt.Errorf("Load: prepare: %w", err)
	}
	defer stmt.Close()

	var blob string
	err = stmt.QueryRow(s.key).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEmpty
		}
		return nil, fmt.Errorf("Load: scan: %w", err)
	}

	students, err := storage.Decode([]byte(blob))
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	return students, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Save writes the whole roster under the configured key.
//
// The upsert is a single statement, so a reader never observes a
// half-written roster.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Save(students []types.Student) error {
	blob, err := storage.Encode(students)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	stmt, err := s.Db.Prepare(
		"INSERT INTO kv (key, value) VALUES (?, ?) " +
			"ON CONFLICT(key) DO UPDATE SET value = excluded.value",
	)
	if err != nil {
		return fmt.Errorf("Save: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(s.key, string(blob)); err != nil {
		return fmt.Errorf("Save: exec: %w", err)
	}

	return nil
}

// Raw overwrites the stored blob verbatim, bypassing encoding. Tests use it
// to simulate a corrupt roster.
func (s *SQLite) Raw(blob string) error {
	_, err := s.Db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) "+
			"ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		s.key, blob,
	)
	if err != nil {
		return fmt.Errorf("Raw: exec: %w", err)
	}
	return nil
}
