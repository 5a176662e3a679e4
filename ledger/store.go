// SPDX-License-Identifier: MIT

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrClosed indicates use of a closed Store.
var ErrClosed = errors.New("ledger: store is closed")

// Entry is one committed admission.
type Entry struct {
	AccountantID string
	ParentID     string
	Sequence     int
	Measurement  string
	Cost         string
	Total        string
	RecordedAt   time.Time
}

// Store is a SQLite-backed ledger. Safe for concurrent use.
type Store struct {
	mu sync.RWMutex // guards db; Close takes it exclusively
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS ledger_entries (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	accountant_id TEXT    NOT NULL,
	parent_id     TEXT    NOT NULL DEFAULT '',
	sequence      INTEGER NOT NULL,
	measurement   TEXT    NOT NULL,
	cost          TEXT    NOT NULL,
	total         TEXT    NOT NULL,
	recorded_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS ledger_entries_accountant ON ledger_entries(accountant_id, sequence);
`

// Open opens (creating if needed) the ledger at path. Use ":memory:" for a
// process-local ledger.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("ledger: path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// each connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate ledger schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Append records e. A zero RecordedAt is set to now.
func (s *Store) Append(ctx context.Context, e Entry) error {
	if s == nil {
		return ErrClosed
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return ErrClosed
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ledger_entries (accountant_id, parent_id, sequence, measurement, cost, total, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.AccountantID, e.ParentID, e.Sequence, e.Measurement, e.Cost, e.Total, e.RecordedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// Entries lists the entries of one accountant in commit order. An empty id
// lists every entry.
func (s *Store) Entries(ctx context.Context, accountantID string) ([]Entry, error) {
	if s == nil {
		return nil, ErrClosed
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	query := `SELECT accountant_id, parent_id, sequence, measurement, cost, total, recorded_at
		FROM ledger_entries`
	var args []any
	if accountantID != "" {
		query += ` WHERE accountant_id = ?`
		args = append(args, accountantID)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e  Entry
			ns int64
		)
		if err := rows.Scan(&e.AccountantID, &e.ParentID, &e.Sequence, &e.Measurement, &e.Cost, &e.Total, &ns); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.RecordedAt = time.Unix(0, ns).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}
	return out, nil
}

// Close releases the database. It waits for in-flight calls and is
// idempotent.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
