package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("listmatch: write json: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestPIN extracts the caller's PIN: the ?pin= query parameter wins,
// falling back to the request body for JSON endpoints that carry one.
func requestPIN(r *http.Request, bodyPIN string) string {
	if pin := r.URL.Query().Get("pin"); pin != "" {
		return pin
	}
	return bodyPIN
}

// getPlaylistBySlug loads the full playlist row, PIN included, for the
// guard and the handlers. Callers must not leak the PIN onward.
func (s *Server) getPlaylistBySlug(ctx context.Context, slug string) (Playlist, error) {
	var pl Playlist
	err := s.db.QueryRow(ctx, `
		SELECT id, slug, name, description, is_private, pin, created_at, updated_at
		FROM playlists
		WHERE slug = $1
	`, slug).Scan(
		&pl.ID,
		&pl.Slug,
		&pl.Name,
		&pl.Description,
		&pl.IsPrivate,
		&pl.PIN,
		&pl.CreatedAt,
		&pl.UpdatedAt,
	)
	return pl, err
}

// execer covers both Querier and pgx.Tx for the updated_at bump.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// bumpUpdatedAt marks a structural mutation on the playlist. Comments do
// not go through here: comment-only activity leaves updated_at alone.
func bumpUpdatedAt(ctx context.Context, q execer, playlistID string) error {
	_, err := q.Exec(ctx, `
		UPDATE playlists SET updated_at = now() WHERE id = $1
	`, playlistID)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// validUUID screens client-supplied ids before they reach SQL, so garbage
// input reads as "not found" rather than a database type error.
func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

const lookupCacheTTL = 15 * time.Minute

// cacheGet returns a cached upstream response body, or nil. Best-effort:
// a missing or failing redis never surfaces to the caller.
func (s *Server) cacheGet(ctx context.Context, key string) []byte {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

func (s *Server) cacheSet(ctx context.Context, key string, data []byte) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, lookupCacheTTL).Err(); err != nil {
		log.Printf("listmatch: cache set %s: %v", key, err)
	}
}
