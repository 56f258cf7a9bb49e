// Package history keeps a journal of calculations in a SQLite database.
//
// Front ends record every evaluation and base conversion, successful or
// not, and can list the most recent ones. The journal is optional: the
// calculator core never touches it.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Kind of a recorded calculation.
type Kind string

const (
	KindEvaluate Kind = "evaluate"
	KindConvert  Kind = "convert"
)

// Entry is one recorded calculation.
type Entry struct {
	ID        string
	Kind      Kind
	Input     string
	Output    string
	ErrorCode string
	CreatedAt time.Time
}

// Failed reports whether the calculation returned an error.
func (e Entry) Failed() bool {
	return e.ErrorCode != ""
}

// Journal is a calculation journal backed by SQLite.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the journal at path.
func Open(ctx context.Context, path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// SQLite serialises writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	j := &Journal{db: db, now: time.Now}
	if err := j.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS calculations (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL DEFAULT '',
			error_code TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_calculations_created ON calculations(created_at)`,
	}
	for _, query := range queries {
		if _, err := j.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Record stores e and returns its id. ID and CreatedAt are filled in when
// empty.
func (j *Journal) Record(ctx context.Context, e Entry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = j.now()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO calculations (id, kind, input, output, error_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, string(e.Kind), e.Input, e.Output, e.ErrorCode, e.CreatedAt.UnixNano())
	if err != nil {
		return "", fmt.Errorf("error saving calculation: %w", err)
	}
	return e.ID, nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, kind, input, output, error_code, created_at
		FROM calculations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("error reading history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e    Entry
			kind string
			ts   int64
		)
		if err := rows.Scan(&e.ID, &kind, &e.Input, &e.Output, &e.ErrorCode, &ts); err != nil {
			return nil, fmt.Errorf("error reading history: %w", err)
		}
		e.Kind = Kind(kind)
		e.CreatedAt = time.Unix(0, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes every entry.
func (j *Journal) Clear(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, `DELETE FROM calculations`); err != nil {
		return fmt.Errorf("error clearing history: %w", err)
	}
	return nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
