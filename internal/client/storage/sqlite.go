package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsession/internal/dbx"
)

// DefaultMaxValueBytes mirrors the few-megabyte budget browsers give an origin.
const DefaultMaxValueBytes = 5 << 20

type SQLiteRepository struct {
	db            dbx.DBTX
	maxValueBytes int
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, maxValueBytes: DefaultMaxValueBytes}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value string) error {
	if r.maxValueBytes > 0 && len(value) > r.maxValueBytes {
		return fmt.Errorf("failed to set kv[%s]: %w", key, ErrQuotaExceeded)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

// Keys lists keys starting with prefix in lexical order. The comparison is
// literal: '_' and '%' in prefix carry no LIKE meaning.
func (r *SQLiteRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key FROM kv WHERE substr(key, 1, length(?)) = ? ORDER BY key`, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv keys: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}

	return keys, nil
}

// SQLiteStore is the Store backed by an *sql.DB.
type SQLiteStore struct {
	*SQLiteRepository
	db *sql.DB
}

type Option func(*SQLiteStore)

// WithMaxValueBytes overrides DefaultMaxValueBytes; n <= 0 disables the check.
func WithMaxValueBytes(n int) Option {
	return func(s *SQLiteStore) {
		s.maxValueBytes = n
	}
}

func NewSQLiteStore(db *sql.DB, opts ...Option) *SQLiteStore {
	s := &SQLiteStore{SQLiteRepository: NewSQLiteRepository(db), db: db}
	for _, o := range opts {
		o(s)
	}
	return s
}

// WithTx runs fn against a repository bound to one transaction. Everything
// fn wrote is rolled back when it returns an error.
func (s *SQLiteStore) WithTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := &SQLiteRepository{db: tx, maxValueBytes: s.maxValueBytes}
		return fn(ctx, repo)
	})
}
