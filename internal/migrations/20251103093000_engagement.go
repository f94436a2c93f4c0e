package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upEngagement, downEngagement)
}

// One row per (post, user): a user holds at most one sentiment per post.
func upEngagement(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE post_reactions (
		post_id    TEXT NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		kind       TEXT NOT NULL CHECK (kind IN ('like', 'dislike')),
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (post_id, user_id)
	);

	CREATE TABLE post_comments (
		id         BIGSERIAL PRIMARY KEY,
		post_id    TEXT NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		name       TEXT NOT NULL,
		text       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX post_comments_post_id_idx ON post_comments (post_id, id);
	`)
	return err
}

func downEngagement(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE post_comments;
	DROP TABLE post_reactions;
	`)
	return err
}
