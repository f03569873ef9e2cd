package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/bank-console/internal/storage"
)

// Ensure Store satisfies the storage.SessionStore interface at compile time.
var _ storage.SessionStore = (*Store)(nil)

// Store provides Postgres-backed persistence for console sessions.
type Store struct {
	pool *pgxpool.Pool
}

// NewSessionStore creates a new Store and runs migrations.
func NewSessionStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS console_sessions (
			id TEXT PRIMARY KEY,
			customer_id BIGINT NOT NULL,
			identity JSONB NOT NULL,
			sealed_token TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS console_sessions_expires_idx ON console_sessions (expires_at);`,
		`CREATE INDEX IF NOT EXISTS console_sessions_customer_idx ON console_sessions (customer_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// SaveSession inserts or replaces a session row.
func (s *Store) SaveSession(ctx context.Context, rec storage.SessionRecord) error {
	identity, err := json.Marshal(rec.Identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	const query = `
		INSERT INTO console_sessions (id, customer_id, identity, sealed_token, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			identity = EXCLUDED.identity,
			sealed_token = EXCLUDED.sealed_token,
			expires_at = EXCLUDED.expires_at;
		`
	if _, err := s.pool.Exec(ctx, query, rec.ID, rec.Identity.CustomerID, identity, rec.SealedToken, rec.CreatedAt, rec.ExpiresAt); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// FindSession fetches a session by id.
func (s *Store) FindSession(ctx context.Context, id string) (storage.SessionRecord, error) {
	const query = `
	SELECT id, identity, sealed_token, created_at, expires_at
	FROM console_sessions
	WHERE id = $1;
	`
	row := s.pool.QueryRow(ctx, query, id)
	return scanSession(row)
}

// DeleteSession removes a session. Deleting a missing session is not an error.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM console_sessions WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired deletes every session that expired before now.
func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM console_sessions WHERE expires_at <= $1;`, now)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSession(row pgx.Row) (storage.SessionRecord, error) {
	var rec storage.SessionRecord
	var identity []byte
	if err := row.Scan(&rec.ID, &identity, &rec.SealedToken, &rec.CreatedAt, &rec.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.SessionRecord{}, storage.ErrNotFound
		}
		return storage.SessionRecord{}, err
	}
	if err := json.Unmarshal(identity, &rec.Identity); err != nil {
		return storage.SessionRecord{}, fmt.Errorf("decode identity: %w", err)
	}
	return rec, nil
}
