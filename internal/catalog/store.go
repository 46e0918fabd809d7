package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound reports a lookup for a description the catalog doesn't hold.
var ErrNotFound = errors.New("description not found in catalog")

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database and verifies the
// schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
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

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// List returns all entries in source order.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT description, object_number, sticker_number, imported_description, location
         FROM catalog_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list catalog entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Description, &e.ObjectNumber, &e.StickerNumber, &e.ImportedDescription, &e.Location); err != nil {
			return nil, fmt.Errorf("scan catalog entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog entries: %w", err)
	}
	return entries, nil
}

// Keys returns the description keys in source order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Description)
	}
	return keys, nil
}

// Lookup returns the entry for the given description key, trimming the key
// before comparison. Misses return ErrNotFound.
func (s *Store) Lookup(ctx context.Context, key string) (Entry, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Entry{}, ErrNotFound
	}

	var e Entry
	err := s.db.QueryRowContext(ctx,
		`SELECT description, object_number, sticker_number, imported_description, location
         FROM catalog_entries WHERE description = ?`, key).
		Scan(&e.Description, &e.ObjectNumber, &e.StickerNumber, &e.ImportedDescription, &e.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("lookup catalog entry: %w", err)
	}
	return e, nil
}

// Count returns the number of catalog entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM catalog_entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("count catalog entries: %w", err)
	}
	return count, nil
}

// Replace atomically swaps the whole catalog for the provided rows. Rows are
// trimmed, blank descriptions dropped, and duplicate keys collapsed to the
// last-seen row before insertion. Returns the number of entries stored.
func (s *Store) Replace(ctx context.Context, rows []Entry) (int, error) {
	entries := normalizeRows(rows)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_entries"); err != nil {
		return 0, fmt.Errorf("clear catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO catalog_entries (description, object_number, sticker_number, imported_description, location)
         VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Description, e.ObjectNumber, e.StickerNumber, e.ImportedDescription, e.Location); err != nil {
			return 0, fmt.Errorf("insert catalog entry %q: %w", e.Description, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace: %w", err)
	}
	return len(entries), nil
}
