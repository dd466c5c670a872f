package lockout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"keygate/internal/platform/clock"
)

// SQLiteStore persists the lockout deadline in a local SQLite database so a
// lockout survives daemon restarts. Pure I/O; escalation stays in the Curve
// and threshold logic in the policy layer.
type SQLiteStore struct {
	db    *sql.DB
	curve Curve
	clock clock.Clock
}

type SQLiteOption func(*SQLiteStore)

func WithSQLiteCurve(curve Curve) SQLiteOption {
	return func(s *SQLiteStore) {
		s.curve = curve
	}
}

func WithSQLiteClock(c clock.Clock) SQLiteOption {
	return func(s *SQLiteStore) {
		if c != nil {
			s.clock = c
		}
	}
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	// The daemon is the only writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewSQLite constructs the store and ensures its schema exists.
func NewSQLite(ctx context.Context, db *sql.DB, opts ...SQLiteOption) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlite handle is required")
	}

	s := &SQLiteStore{
		db:    db,
		curve: DefaultCurve(),
		clock: clock.System(),
	}
	for _, opt := range opts {
		opt(s)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS lockout_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			deadline_unix_ms INTEGER NOT NULL,
			set_at_unix_ms INTEGER NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create lockout schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) PendingDeadline(ctx context.Context) (*time.Time, error) {
	var deadlineMs int64
	err := s.db.QueryRowContext(ctx,
		`SELECT deadline_unix_ms FROM lockout_state WHERE id = 1`,
	).Scan(&deadlineMs)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lockout deadline: %w", err)
	}

	deadline := time.UnixMilli(deadlineMs)
	if !deadline.After(s.clock.Now()) {
		// Expired deadlines are cleared on read so a stale row can never
		// feed a new lockout computation.
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &deadline, nil
}

func (s *SQLiteStore) SetDeadline(ctx context.Context, lifetimeFailures int, now time.Time) (time.Time, error) {
	deadline := now.Add(s.curve.Duration(lifetimeFailures))

	query := `
		INSERT INTO lockout_state (id, deadline_unix_ms, set_at_unix_ms)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			deadline_unix_ms = excluded.deadline_unix_ms,
			set_at_unix_ms = excluded.set_at_unix_ms
	`
	if _, err := s.db.ExecContext(ctx, query, deadline.UnixMilli(), now.UnixMilli()); err != nil {
		return time.Time{}, fmt.Errorf("set lockout deadline: %w", err)
	}
	return deadline, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM lockout_state WHERE id = 1`); err != nil {
		return fmt.Errorf("clear lockout deadline: %w", err)
	}
	return nil
}
