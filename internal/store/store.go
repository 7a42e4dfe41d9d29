package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for cached loop analyses.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for read-only queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates all tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS grids (
  id              INTEGER PRIMARY KEY,
  hash            TEXT NOT NULL UNIQUE,
  height          INTEGER NOT NULL,
  width           INTEGER NOT NULL,
  source          TEXT,
  created_at      TIMESTAMP
);

CREATE TABLE IF NOT EXISTS runs (
  id              INTEGER PRIMARY KEY,
  grid_id         INTEGER NOT NULL REFERENCES grids(id),
  loop_length     INTEGER NOT NULL,
  loop_tiles      INTEGER NOT NULL,
  enclosed        INTEGER NOT NULL,
  start_row       INTEGER NOT NULL,
  start_col       INTEGER NOT NULL,
  start_glyph     TEXT NOT NULL,
  heading         TEXT NOT NULL,
  analyzed_at     TIMESTAMP
);

CREATE TABLE IF NOT EXISTS loop_tiles (
  run_id          INTEGER NOT NULL REFERENCES runs(id),
  seq             INTEGER NOT NULL,
  row             INTEGER NOT NULL,
  col             INTEGER NOT NULL,
  glyph           TEXT NOT NULL,
  PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS metadata (
  key             TEXT PRIMARY KEY,
  value           TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_grid ON runs(grid_id);
`

// GetMetadata returns the value stored under key, or "" when unset.
func (s *Store) GetMetadata(key string) (string, error) {
	var v sql.NullString
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get metadata %s: %w", key, err)
	}
	return v.String, nil
}

// SetMetadata stores value under key, replacing any previous value.
func (s *Store) SetMetadata(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO metadata (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set metadata %s: %w", key, err)
	}
	return nil
}

// Reset deletes every grid, run, and loop tile. Metadata is kept.
func (s *Store) Reset() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Reverse-dependency order for FK constraints.
	for _, q := range []string{
		"DELETE FROM loop_tiles",
		"DELETE FROM runs",
		"DELETE FROM grids",
	} {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	return tx.Commit()
}
