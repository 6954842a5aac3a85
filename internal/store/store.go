// Package store persists the inventory dataset in PostgreSQL.
//
// Store implements gateway.Gateway, which lets the interchange subsystem
// run in-process on the server against the same contract the remote HTTP
// client provides. Entities carry app-generated UUID string identities so
// the destination never depends on archive identities.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps a pgx connection pool with typed inventory operations.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by pool. The caller owns the pool's lifecycle.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// schema is applied idempotently at startup. Table order matters: totes
// reference locations, items reference totes and users.
const schema = `
CREATE TABLE IF NOT EXISTS locations (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS users (
	id              TEXT PRIMARY KEY,
	email           TEXT NOT NULL UNIQUE,
	full_name       TEXT NOT NULL DEFAULT '',
	hashed_password TEXT NOT NULL,
	is_active       BOOLEAN NOT NULL DEFAULT TRUE,
	is_superuser    BOOLEAN NOT NULL DEFAULT FALSE,
	account_id      TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS totes (
	id            TEXT PRIMARY KEY,
	name          TEXT,
	description   TEXT,
	location      TEXT,
	location_id   TEXT REFERENCES locations(id) ON DELETE SET NULL,
	metadata_json TEXT
);

CREATE TABLE IF NOT EXISTS items (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	quantity       INTEGER NOT NULL DEFAULT 1,
	tote_id        TEXT REFERENCES totes(id) ON DELETE SET NULL,
	image_url      TEXT NOT NULL DEFAULT '',
	is_checked_out BOOLEAN NOT NULL DEFAULT FALSE,
	checked_out_at TIMESTAMPTZ,
	checked_out_by TEXT REFERENCES users(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_items_tote_id ON items(tote_id);
CREATE INDEX IF NOT EXISTS idx_totes_location_id ON totes(location_id);
`

// Migrate applies the schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("store: apply schema: %w", err)
	}
	return nil
}
