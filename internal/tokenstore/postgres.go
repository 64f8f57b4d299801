package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PostgresStore struct {
	db  *sql.DB
	key string
}

func NewPostgresStore(ctx context.Context, db *sql.DB, key string) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if key == "" {
		return nil, ErrKeyRequired
	}
	s := &PostgresStore{db: db, key: key}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS client_storage (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("ensure client_storage schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context) (string, bool, error) {
	var tok string
	const q = `SELECT value FROM client_storage WHERE key = $1`
	if err := s.db.QueryRowContext(ctx, q, s.key).Scan(&tok); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("query stored token: %w", err)
	}
	return tok, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, token string) error {
	if token == "" {
		const del = `DELETE FROM client_storage WHERE key = $1`
		if _, err := s.db.ExecContext(ctx, del, s.key); err != nil {
			return fmt.Errorf("delete stored token: %w", err)
		}
		return nil
	}

	const q = `
INSERT INTO client_storage (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value,
	updated_at = NOW()`
	if _, err := s.db.ExecContext(ctx, q, s.key, token); err != nil {
		return fmt.Errorf("upsert stored token: %w", err)
	}
	return nil
}
