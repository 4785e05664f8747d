package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// QueryRecord is one executed recommendation query.
type QueryRecord struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Requested int       `json:"requested"`
	Found     bool      `json:"found"`
	Results   int       `json:"results"`
	QueriedAt time.Time `json:"queried_at"`
}

// Store persists query history in SQLite via modernc.org/sqlite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) a SQLite database at the given path,
// applies recommended pragmas, and ensures the history schema exists.
// Use ":memory:" for an ephemeral store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// SQLite performs best with a single write connection. WAL enables concurrent readers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	// Apply recommended pragmas (modernc.org/sqlite requires SQL statements, not DSN params).
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS query_history (
			id         TEXT     PRIMARY KEY,
			label      TEXT     NOT NULL,
			requested  INTEGER  NOT NULL,
			found      INTEGER  NOT NULL,
			results    INTEGER  NOT NULL,
			queried_at DATETIME NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create query_history: %w", err)
	}

	return &Store{db: db}, nil
}

// Insert stores one query record.
func (s *Store) Insert(ctx context.Context, rec QueryRecord) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO query_history (id, label, requested, found, results, queried_at) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID, rec.Label, rec.Requested, rec.Found, rec.Results, rec.QueriedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert query record: %w", err)
	}
	return nil
}

// List returns the most recent records, newest first, capped at limit.
func (s *Store) List(ctx context.Context, limit int) ([]QueryRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, label, requested, found, results, queried_at FROM query_history ORDER BY queried_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list query records: %w", err)
	}
	defer rows.Close()

	records := make([]QueryRecord, 0, limit)
	for rows.Next() {
		var rec QueryRecord
		var queriedAt string
		if err := rows.Scan(&rec.ID, &rec.Label, &rec.Requested, &rec.Found, &rec.Results, &queriedAt); err != nil {
			return nil, fmt.Errorf("scan query record: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, queriedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid queried_at %q: %w", queriedAt, err)
		}
		rec.QueriedAt = t
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all history records.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM query_history"); err != nil {
		return fmt.Errorf("clear query history: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
