// Package recall stores submitted console commands in SQLite.
package recall

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"tradedesk/internal/domain"
)

var _ domain.RecallStore = (*SQLiteStore)(nil)

// SQLiteStore implements domain.RecallStore.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and migrates it.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("create recall dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open recall db: %w", err)
	}
	// Two desks may share one file.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=2000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate recall db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS submissions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			surface    TEXT NOT NULL,
			text       TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`); err != nil {
		return err
	}
	_, err := db.Exec("CREATE INDEX IF NOT EXISTS idx_submissions_surface ON submissions (surface, id)")
	return err
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append records one submission of surface.
func (s *SQLiteStore) Append(ctx context.Context, surface, text string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO submissions (surface, text, created_at) VALUES (?, ?, ?)",
		surface, text, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append recall: %w", err)
	}
	return nil
}

// Recent returns up to limit of the newest submissions of surface, oldest
// first. A non-positive limit returns all of them.
func (s *SQLiteStore) Recent(ctx context.Context, surface string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT text FROM (
			SELECT id, text FROM submissions WHERE surface = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`,
		surface, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("load recall: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

// Prune keeps the newest keep submissions of surface and deletes the rest.
func (s *SQLiteStore) Prune(ctx context.Context, surface string, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM submissions WHERE surface = ? AND id NOT IN (
			SELECT id FROM submissions WHERE surface = ? ORDER BY id DESC LIMIT ?
		)`,
		surface, surface, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune recall: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
