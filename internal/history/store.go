// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of conversions so batch runs can
// skip documents that already converted with the same options.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf2text/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxResults = 20

	// timeLayout has a fixed width so converted_at sorts as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Entry is one conversion attempt.
type Entry struct {
	ID          string                 `json:"id" yaml:"id"`
	DocumentID  string                 `json:"document_id" yaml:"document_id"`
	SourcePath  string                 `json:"source_path" yaml:"source_path"`
	SHA256      string                 `json:"sha256" yaml:"sha256"`
	Options     string                 `json:"options" yaml:"options"`
	Status      types.ConversionStatus `json:"status" yaml:"status"`
	Bytes       int64                  `json:"bytes" yaml:"bytes"`
	ErrorKind   string                 `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Error       string                 `json:"error,omitempty" yaml:"error,omitempty"`
	ConvertedAt time.Time              `json:"converted_at" yaml:"converted_at"`
}

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates dir/history.db and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			source_path TEXT NOT NULL,
			sha256 TEXT NOT NULL,
			options TEXT NOT NULL,
			status TEXT NOT NULL,
			bytes INTEGER NOT NULL DEFAULT 0,
			error_kind TEXT,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_content ON conversions(sha256, options, status)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_time ON conversions(converted_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores e, assigning an ID and timestamp when they are empty, and
// returns the stored entry.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.ConvertedAt.IsZero() {
		e.ConvertedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (id, document_id, source_path, sha256, options, status, bytes, error_kind, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.DocumentID, e.SourcePath, e.SHA256, e.Options, string(e.Status),
		e.Bytes, e.ErrorKind, e.Error, e.ConvertedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("recording conversion of %s: %w", e.DocumentID, err)
	}
	return e, nil
}

// LastSuccess returns the most recent successful conversion of content
// with the given SHA-256 and options fingerprint, or nil if there is none.
func (s *Store) LastSuccess(ctx context.Context, sha256, options string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM conversions
		 WHERE sha256 = ? AND options = ? AND status = ?
		 ORDER BY converted_at DESC, rowid DESC LIMIT 1`,
		sha256, options, string(types.ConversionDone),
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", sha256, err)
	}
	return &e, nil
}

// List returns the newest entries first. A limit <= 0 uses the configured
// default.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM conversions ORDER BY converted_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing conversions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

const entryColumns = `id, document_id, source_path, sha256, options, status, bytes, error_kind, error, converted_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var (
		e                   Entry
		status, convertedAt string
		errKind, errMsg     sql.NullString
	)
	if err := sc.Scan(&e.ID, &e.DocumentID, &e.SourcePath, &e.SHA256, &e.Options,
		&status, &e.Bytes, &errKind, &errMsg, &convertedAt); err != nil {
		return Entry{}, err
	}
	e.Status = types.ConversionStatus(status)
	e.ErrorKind = errKind.String
	e.Error = errMsg.String
	t, err := time.Parse(timeLayout, convertedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing converted_at %q: %w", convertedAt, err)
	}
	e.ConvertedAt = t
	return e, nil
}
