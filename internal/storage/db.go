// Package storage provides SQLite-based persistence for the trove
// corpus. Each entity kind is stored as one JSON blob under a fixed
// storage key; the model decoders sanitize whatever comes back.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrBlobNotFound is returned when no blob exists under a key.
var ErrBlobNotFound = errors.New("storage: blob not found")

// SQLiteStore persists corpus blobs in a SQLite database.
type SQLiteStore struct {
	db        *sql.DB
	closeOnce sync.Once
	closeErr  error
}

// DefaultDBPath returns the default database path (~/.trove/state.db).
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".trove", "state.db"), nil
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
// An empty path uses the default path. WAL mode is enabled so a
// search and an import can run side by side.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		var err error
		dbPath, err = DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// modernc.org/sqlite uses _pragma=name(value) syntax
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles concurrency better with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// Close closes the database connection. Safe to call multiple times.
func (s *SQLiteStore) Close() error {
	s.closeOnce.Do(func() {
		if s.db != nil {
			// Merge the WAL into the main db before closing.
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			s.closeErr = s.db.Close()
		}
	})
	return s.closeErr
}

// migrate brings the schema up to date.
func (s *SQLiteStore) migrate(ctx context.Context) error {
	currentVersion := 0
	row := s.db.QueryRowContext(ctx, `
		SELECT version FROM schema_meta ORDER BY version DESC LIMIT 1
	`)
	if err := row.Scan(&currentVersion); err != nil {
		if err == sql.ErrNoRows || isTableNotFoundError(err) {
			currentVersion = 0
		} else {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{version: 1, sql: migrationV1},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("migration v%d failed: %w", m.version, err)
		}
		_, err := s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO schema_meta (version, applied_at_unix_ms)
			VALUES (?, ?)
		`, m.version, time.Now().UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", m.version, err)
		}
	}
	return nil
}

func isTableNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such table") || strings.Contains(msg, "does not exist")
}

// migrationV1 creates the initial schema.
const migrationV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_meta (
  version INTEGER PRIMARY KEY,
  applied_at_unix_ms INTEGER NOT NULL
);

-- Corpus blobs, one JSON document per entity kind
CREATE TABLE IF NOT EXISTS blobs (
  key TEXT PRIMARY KEY,
  json TEXT NOT NULL,
  updated_at_unix_ms INTEGER NOT NULL
);
`

// GetBlob returns the JSON blob stored under key, or ErrBlobNotFound.
func (s *SQLiteStore) GetBlob(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("blob key cannot be empty")
	}
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT json FROM blobs WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %q: %w", key, err)
	}
	return []byte(raw), nil
}

// PutBlob stores raw under key, replacing any previous value.
func (s *SQLiteStore) PutBlob(ctx context.Context, key string, raw []byte) error {
	if key == "" {
		return fmt.Errorf("blob key cannot be empty")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (key, json, updated_at_unix_ms)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			json = excluded.json,
			updated_at_unix_ms = excluded.updated_at_unix_ms
	`, key, string(raw), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}
	return nil
}

// DeleteBlob removes the blob under key. Deleting a missing key is
// not an error.
func (s *SQLiteStore) DeleteBlob(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("blob key cannot be empty")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}
	return nil
}
