// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite ledger of conversion runs so the
// user can see what was converted, when, and where it went. The ledger is
// advisory: failures here never fail a conversion that already succeeded.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "history.db"

// Run is one recorded conversion.
type Run struct {
	ID         int64     `json:"id"`
	Source     string    `json:"source"`
	Output     string    `json:"output"`
	Links      int       `json:"links"`
	Skipped    int       `json:"skipped"`
	UserID     int       `json:"user_id"`
	Collection string    `json:"collection"`
	FinishedAt time.Time `json:"finished_at"`
}

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultDir returns the default ledger location under the user's home.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "karawarden"), nil
}

// Open opens or creates the ledger database at dir/history.db, creating
// the schema if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		output TEXT NOT NULL,
		links INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		collection TEXT NOT NULL,
		finished_at TEXT NOT NULL
	)`)
	return err
}

// Record appends a run to the ledger.
func (s *Store) Record(ctx context.Context, run Run) error {
	finished := run.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (source, output, links, skipped, user_id, collection, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Source, run.Output, run.Links, run.Skipped, run.UserID, run.Collection,
		finished.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, output, links, skipped, user_id, collection, finished_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var finished string
		if err := rows.Scan(&run.ID, &run.Source, &run.Output, &run.Links,
			&run.Skipped, &run.UserID, &run.Collection, &finished); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.FinishedAt, err = time.Parse(time.RFC3339, finished)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp %q: %w", finished, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading runs: %w", err)
	}
	return runs, nil
}
