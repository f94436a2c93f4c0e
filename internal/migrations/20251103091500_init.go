package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE posts (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		body       TEXT NOT NULL,
		topics     TEXT[] NOT NULL,
		owner_id   TEXT NOT NULL REFERENCES users (id),
		owner_name TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT posts_topics_not_empty CHECK (cardinality(topics) > 0)
	);

	CREATE INDEX posts_expires_at_idx ON posts (expires_at);
	CREATE INDEX posts_created_at_idx ON posts (created_at);
	CREATE INDEX posts_topics_idx ON posts USING GIN (topics);
	`)
	return err
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE posts;
	DROP TABLE users;
	`)
	return err
}
