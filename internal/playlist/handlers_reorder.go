package playlist

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

// handleReorderSongs replaces the whole ordering of a playlist in one
// transaction. The supplied id list must be a permutation of exactly the
// playlist's current songs; anything else (a missing id, an extra id, a
// duplicate, an id from another playlist) is rejected and the previous
// ordering stays intact. A reorder racing a concurrent add or remove
// fails this check on purpose: the caller re-fetches and retries.
func (s *Server) handleReorderSongs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	var body struct {
		SongIDs []string `json:"songIds"`
		PIN     string   `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	pl, err := s.getPlaylistBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	if err != nil {
		log.Printf("listmatch: reorder: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if !guard(w, &pl, requestPIN(r, body.PIN)) {
		return
	}

	requested := make(map[string]bool, len(body.SongIDs))
	for _, id := range body.SongIDs {
		if !validUUID(id) || requested[id] {
			writeError(w, http.StatusBadRequest, "songIds must list every song in the playlist exactly once")
			return
		}
		requested[id] = true
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		log.Printf("listmatch: reorder begin tx: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer tx.Rollback(ctx)

	// Lock the playlist's songs so a concurrent add/remove serializes
	// against the membership check below.
	rows, err := tx.Query(ctx, `
		SELECT id FROM songs
		WHERE playlist_id = $1
		FOR UPDATE
	`, pl.ID)
	if err != nil {
		log.Printf("listmatch: reorder lock songs: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	current := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			log.Printf("listmatch: reorder scan: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		current[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		log.Printf("listmatch: reorder rows: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if len(current) != len(body.SongIDs) {
		writeError(w, http.StatusBadRequest, "songIds must list every song in the playlist exactly once")
		return
	}
	for id := range requested {
		if !current[id] {
			writeError(w, http.StatusBadRequest, "songIds must list every song in the playlist exactly once")
			return
		}
	}

	// position = index. The unique constraint is deferred, so the
	// renumbering only has to be consistent at commit.
	for idx, id := range body.SongIDs {
		if _, err := tx.Exec(ctx, `
			UPDATE songs
			SET position = $3
			WHERE id = $2 AND playlist_id = $1
		`, pl.ID, id, idx); err != nil {
			log.Printf("listmatch: reorder update: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
	}

	if err := bumpUpdatedAt(ctx, tx, pl.ID); err != nil {
		log.Printf("listmatch: reorder bump: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("listmatch: reorder commit: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reordered": len(body.SongIDs),
	})
}
