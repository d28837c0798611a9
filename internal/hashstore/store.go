// Package hashstore persists per-file content hashes from bundling runs in
// a small sqlite database. It is a side store only: bundling semantics
// never depend on it, but watch mode and --skip-unchanged consult it to
// avoid re-rendering when no input changed.
package hashstore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a sqlite-backed (module, path) -> hash map.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens or creates the store. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bundle_files (
		module     TEXT NOT NULL,
		path       TEXT NOT NULL,
		hash       TEXT NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (module, path)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Hashes returns the stored hash set for a module.
func (s *Store) Hashes(ctx context.Context, module string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT path, hash FROM bundle_files WHERE module = ?", module)
	if err != nil {
		return nil, fmt.Errorf("query hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var path, hash string
		if err := rows.Scan(&path, &hash); err != nil {
			return nil, fmt.Errorf("scan hash row: %w", err)
		}
		hashes[path] = hash
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return hashes, nil
}

// Put replaces the module's stored hash set with the given one.
func (s *Store) Put(ctx context.Context, module string, hashes map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM bundle_files WHERE module = ?", module); err != nil {
		return fmt.Errorf("clear module hashes: %w", err)
	}

	now := time.Now().Unix()
	for path, hash := range hashes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO bundle_files (module, path, hash, updated_at) VALUES (?, ?, ?, ?)",
			module, path, hash, now); err != nil {
			return fmt.Errorf("insert hash: %w", err)
		}
	}

	return tx.Commit()
}

// Changed reports whether the given hash set differs from the stored one.
// An empty store counts as changed so first runs always proceed.
func (s *Store) Changed(ctx context.Context, module string, hashes map[string]string) (bool, error) {
	stored, err := s.Hashes(ctx, module)
	if err != nil {
		return true, err
	}
	if len(stored) == 0 || len(stored) != len(hashes) {
		return true, nil
	}
	for path, hash := range hashes {
		if stored[path] != hash {
			return true, nil
		}
	}
	return false, nil
}
