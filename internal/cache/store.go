package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/001_initial.sql
var initialMigration string

// Store is a sqlite-backed cache of generated recommendation lists.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run cache migrations: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	var tableCount int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='recommendations'
	`).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("failed to check migrations: %w", err)
	}

	if tableCount == 0 {
		if _, err := s.db.Exec(initialMigration); err != nil {
			return fmt.Errorf("failed to run initial migration: %w", err)
		}
	}

	return nil
}

// Get returns the cached listing ids for key. Entries older than maxAge
// are treated as absent.
func (s *Store) Get(ctx context.Context, key string, maxAge time.Duration) ([]string, bool, error) {
	var (
		payload   string
		createdAt string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT listing_ids, created_at FROM recommendations
		WHERE cache_key = ?
	`, key).Scan(&payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse cache timestamp: %w", err)
	}

	if time.Since(created) > maxAge {
		return nil, false, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(payload), &ids); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	return ids, true, nil
}

// Put stores the listing ids for key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key string, ids []string) error {
	payload, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO recommendations (cache_key, listing_ids, created_at)
		VALUES (?, ?, ?)
	`, key, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	return nil
}

// Prune deletes entries older than maxAge and returns the number removed.
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge).Format(time.RFC3339)

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM recommendations WHERE created_at < ?
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}

	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
