// Package sqlite implements the ports.CounterStore interface on SQLite
// (modernc.org/sqlite, no cgo). It is the alternative to the bbolt store
// for deployments that want to query counters with ordinary SQL tools.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/corey/latebot/internal/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS counters (
    user_id TEXT PRIMARY KEY,
    count   INTEGER NOT NULL
)`

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store implements ports.CounterStore backed by SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection serializes writers inside the process; busy_timeout
	// covers other processes.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create counters table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Increment adds one to the user's counter with a single upsert.
func (s *Store) Increment(userID string) (uint64, error) {
	if userID == "" {
		return 0, errors.New("empty user id")
	}
	ctx := context.Background()

	var n int64
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			`INSERT INTO counters (user_id, count) VALUES (?, 1)
             ON CONFLICT(user_id) DO UPDATE SET count = count + 1
             RETURNING count`,
			userID,
		).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("increment %q: %w", userID, err)
	}
	return uint64(n), nil
}

// Count returns the user's counter, 0 if the user was never counted.
func (s *Store) Count(userID string) (uint64, error) {
	ctx := context.Background()

	var n int64
	err := retryOnBusy(ctx, func() error {
		err := s.db.QueryRowContext(ctx, `SELECT count FROM counters WHERE user_id = ?`, userID).Scan(&n)
		if errors.Is(err, sql.ErrNoRows) {
			n = 0
			return nil
		}
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", userID, err)
	}
	return uint64(n), nil
}

// Counts returns every counter, highest first, ties by user ID.
func (s *Store) Counts() ([]ports.UserCount, error) {
	ctx := context.Background()

	var counts []ports.UserCount
	err := retryOnBusy(ctx, func() error {
		counts = counts[:0]
		return s.listCounts(ctx, &counts)
	})
	if err != nil {
		return nil, err
	}
	ports.SortCounts(counts)
	return counts, nil
}

func (s *Store) listCounts(ctx context.Context, dst *[]ports.UserCount) error {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id, count FROM counters`)
	if err != nil {
		return fmt.Errorf("list counters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			user string
			n    int64
		)
		if err := rows.Scan(&user, &n); err != nil {
			return fmt.Errorf("scan counter: %w", err)
		}
		*dst = append(*dst, ports.UserCount{UserID: user, Count: uint64(n)})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list counters: %w", err)
	}
	return nil
}

// Reset removes the user's counter. Idempotent.
func (s *Store) Reset(userID string) error {
	ctx := context.Background()
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM counters WHERE user_id = ?`, userID)
		return err
	})
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
