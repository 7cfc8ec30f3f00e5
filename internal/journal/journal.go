// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal records conversion outcomes in a local SQLite database
// so past runs can be inspected and exported. The core conversion path
// never depends on it; recording is a CLI-layer concern.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/forkcoder/mit-convertpdf/pkg/types"
)

const dbFile = "journal.db"

// Store manages the conversion journal database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal database under cfg.Dir, creating the
// directory and schema when absent.
func Open(cfg types.JournalConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input TEXT NOT NULL,
		output TEXT,
		status TEXT NOT NULL,
		detail TEXT,
		duration_ms INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Append records one conversion attempt.
func (s *Store) Append(rec types.ConversionRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO conversions (input, output, status, detail, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Input, rec.Output, string(rec.Status), rec.Detail,
		rec.Duration.Milliseconds(),
		rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording conversion: %w", err)
	}
	return nil
}

// List returns the most recent records, newest first. A limit <= 0 returns
// everything.
func (s *Store) List(limit int) ([]types.ConversionRecord, error) {
	query := `SELECT input, output, status, detail, duration_ms, created_at
		FROM conversions ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var recs []types.ConversionRecord
	for rows.Next() {
		var rec types.ConversionRecord
		var status, created string
		var durationMS int64
		if err := rows.Scan(&rec.Input, &rec.Output, &status, &rec.Detail, &durationMS, &created); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		rec.Status = types.ConversionStatus(status)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			rec.CreatedAt = ts
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
