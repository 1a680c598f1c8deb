// Package cache persists the first working day derived for a token, so
// runs without an explicit start date don't re-scan from the beginning.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Lemminkyinen/clockify-flex/internal/timeutil"
)

// Store is a SQLite-backed first-date cache. Use ":memory:" as the path
// for tests.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the cache database location (~/.clockify-flex/cache.db).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".clockify-flex", "cache.db"), nil
}

// Open opens (and if needed creates) the cache database and migrates the
// schema.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating cache database: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS first_dates (
		token_hash TEXT PRIMARY KEY,
		first_date TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// FirstDate returns the cached first working day for the token.
// ok is false when nothing is cached.
func (s *Store) FirstDate(token string) (date time.Time, ok bool, err error) {
	var value string
	row := s.db.QueryRow(`SELECT first_date FROM first_dates WHERE token_hash = ?`, hashToken(token))
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("reading cached first date: %w", err)
	}
	date, err = time.ParseInLocation(time.DateOnly, value, time.UTC)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("cached first date %q: %w", value, err)
	}
	return date, true, nil
}

// SetFirstDate stores the first working day for the token, replacing any
// previous value.
func (s *Store) SetFirstDate(token string, date time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO first_dates (token_hash, first_date, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(token_hash) DO UPDATE SET
			first_date = excluded.first_date,
			updated_at = excluded.updated_at`,
		hashToken(token),
		timeutil.DateOf(date).Format(time.DateOnly),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing cached first date: %w", err)
	}
	return nil
}

// Clear removes every cached entry.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM first_dates`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// Entries returns all cached rows for display (token hashes, not tokens).
func (s *Store) Entries() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT token_hash, first_date, updated_at FROM first_dates ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.TokenHash, &e.FirstDate, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Entry is one cached row.
type Entry struct {
	TokenHash string
	FirstDate string
	UpdatedAt string
}

// hashToken derives the storage key: tokens are secrets and never stored
// raw.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
