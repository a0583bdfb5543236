package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Dialect selects the placeholder style of the SQL store
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// SQLStore persists key/value pairs in a single `storage` table.
// Both Postgres and SQLite accept the same upsert syntax; only placeholders differ.
type SQLStore struct {
	conn    *sql.DB
	dialect Dialect
}

// NewSQLStore creates a SQLStore on an open connection
func NewSQLStore(conn *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{conn: conn, dialect: dialect}
}

// Ensure SQLStore implements KeyValueStore
var _ KeyValueStore = (*SQLStore)(nil)

// EnsureSchema creates the storage table when missing
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS storage (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
	if _, err := s.conn.ExecContext(ctx, query); err != nil {
		zap.S().Errorf("❌ EnsureSchema: %v", err)
		return fmt.Errorf("failed to create storage table: %w", err)
	}
	return nil
}

// arg returns the n-th (1-based) placeholder for the dialect
func (s *SQLStore) arg(n int) string {
	if s.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM storage WHERE key = ` + s.arg(1)

	var value string
	err := s.conn.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO storage (key, value)
		VALUES (%s, %s)
		ON CONFLICT (key)
		DO UPDATE SET value = excluded.value
	`, s.arg(1), s.arg(2))

	if _, err := s.conn.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	placeholders := make([]string, len(keys))
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		placeholders[i] = s.arg(i + 1)
		args[i] = k
	}
	query := `DELETE FROM storage WHERE key IN (` + strings.Join(placeholders, ", ") + `)`

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete keys %v: %w", keys, err)
	}
	return nil
}
