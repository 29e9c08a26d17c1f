package playlist

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AutoMigrate applies the schema. The unique constraint on
// (playlist_id, position) is the backstop against concurrent appends
// racing to the same position; it is deferred so a reorder can renumber
// every row inside one transaction without transient collisions.
func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS pgcrypto`); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS playlists (
          id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          slug        TEXT NOT NULL UNIQUE,
          name        TEXT NOT NULL,
          description TEXT,
          is_private  BOOLEAN NOT NULL DEFAULT FALSE,
          pin         TEXT,
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS songs (
          id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          playlist_id uuid NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
          title       TEXT NOT NULL,
          artist      TEXT NOT NULL,
          album       TEXT NOT NULL DEFAULT '',
          cover_image_url TEXT NOT NULL DEFAULT '',
          itunes_id   TEXT NOT NULL DEFAULT '',
          position    INT NOT NULL,
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
          CONSTRAINT songs_playlist_position_key
              UNIQUE (playlist_id, position) DEFERRABLE INITIALLY DEFERRED
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS comments (
          id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          song_id     uuid NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
          author_name TEXT NOT NULL,
          content     TEXT NOT NULL,
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE INDEX IF NOT EXISTS idx_comments_song_created
      ON comments(song_id, created_at DESC)
    `); err != nil {
		return err
	}

	return nil
}
