package registry

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale registries must be cleared or deleted.
const schemaVersion = 1

// maxEntries bounds how many recent projects the registry retains. Touch
// prunes the oldest rows beyond this.
const maxEntries = 20

// ErrSchemaMismatch indicates the registry database was written by a
// different schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Entry is one remembered project.
type Entry struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	LastOpened time.Time `json:"last_opened"`
}

// Store persists the recent-projects registry in SQLite. Mutations take a
// file lock next to the database so concurrent CLI invocations serialize.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the registry database at path, creating
// parent directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure registry dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open registry db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		path: path,
		lock: flock.New(path + ".lock"),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: registry has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Touch records that the project at path was opened now, inserting or
// refreshing its row, then prunes entries beyond the retention bound.
func (s *Store) Touch(ctx context.Context, name, path string) error {
	return s.mutate(ctx, func() error {
		timestamp := time.Now().UTC().Format(time.RFC3339Nano)
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO projects (path, name, last_opened) VALUES (?, ?, ?)
             ON CONFLICT(path) DO UPDATE SET name = excluded.name, last_opened = excluded.last_opened`,
			path, name, timestamp,
		)
		if err != nil {
			return fmt.Errorf("touch project: %w", err)
		}
		_, err = s.db.ExecContext(ctx,
			`DELETE FROM projects WHERE path NOT IN (
                SELECT path FROM projects ORDER BY last_opened DESC LIMIT ?
            )`,
			maxEntries,
		)
		if err != nil {
			return fmt.Errorf("prune registry: %w", err)
		}
		return nil
	})
}

// Recent returns remembered projects, newest first. limit <= 0 returns all
// retained entries.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > maxEntries {
		limit = maxEntries
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT path, name, last_opened FROM projects ORDER BY last_opened DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var opened string
		if err := rows.Scan(&entry.Path, &entry.Name, &opened); err != nil {
			return nil, fmt.Errorf("scan registry row: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, opened); parseErr == nil {
			entry.LastOpened = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registry rows: %w", err)
	}
	return entries, nil
}

// Remove forgets the project at path. Removing an unknown path is not an
// error.
func (s *Store) Remove(ctx context.Context, path string) error {
	return s.mutate(ctx, func() error {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE path = ?", path); err != nil {
			return fmt.Errorf("remove project: %w", err)
		}
		return nil
	})
}

// Clear forgets every remembered project.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func() error {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM projects"); err != nil {
			return fmt.Errorf("clear registry: %w", err)
		}
		return nil
	})
}

func (s *Store) mutate(ctx context.Context, fn func() error) error {
	ok, err := s.lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquire registry lock: %w", err)
	}
	if !ok {
		return errors.New("registry lock unavailable")
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}
