package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/xmannii/listmatch/internal/token"
)

var pinFormat = regexp.MustCompile(`^\d{4}$`)

// slugAttempts bounds slug generation retries before giving up with a 409.
const slugAttempts = 5

// handleCreatePlaylist creates a playlist. This is the only response that
// ever carries the PIN; private playlists without a caller-chosen PIN get
// a generated one.
func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsPrivate   bool   `json:"isPrivate"`
		PIN         string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body.Name = strings.TrimSpace(body.Name)
	body.Description = strings.TrimSpace(body.Description)

	if body.Name == "" || len(body.Name) > maxNameLen {
		writeError(w, http.StatusBadRequest, "name must be between 1 and 100 characters")
		return
	}
	if len(body.Description) > maxDescriptionLen {
		writeError(w, http.StatusBadRequest, "description is too long")
		return
	}

	var description *string
	if body.Description != "" {
		description = &body.Description
	}

	// PIN exists iff the playlist is private; a stray PIN on a public
	// playlist is ignored.
	var pin *string
	if body.IsPrivate {
		if body.PIN != "" {
			if !pinFormat.MatchString(body.PIN) {
				writeError(w, http.StatusBadRequest, "pin must be exactly 4 digits")
				return
			}
			pin = &body.PIN
		} else {
			generated := token.NewPIN()
			pin = &generated
		}
	}

	var pl Playlist
	for attempt := 0; ; attempt++ {
		slug := token.NewSlug()
		err := s.db.QueryRow(ctx, `
			INSERT INTO playlists (slug, name, description, is_private, pin)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id, slug, name, description, is_private, pin, created_at, updated_at
		`, slug, body.Name, description, body.IsPrivate, pin).Scan(
			&pl.ID,
			&pl.Slug,
			&pl.Name,
			&pl.Description,
			&pl.IsPrivate,
			&pl.PIN,
			&pl.CreatedAt,
			&pl.UpdatedAt,
		)
		if err == nil {
			break
		}
		if isUniqueViolation(err) && attempt < slugAttempts-1 {
			continue
		}
		if isUniqueViolation(err) {
			writeError(w, http.StatusConflict, "could not allocate a unique slug")
			return
		}
		log.Printf("listmatch: create playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Playlist
		PIN *string `json:"pin"`
	}{pl, pl.PIN})
}

// handleGetPlaylist returns playlist metadata plus its songs in display
// order. Private playlists demand the PIN on every read; nothing beyond
// the 401 shape is revealed without it.
func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	pl, err := s.getPlaylistBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	if err != nil {
		log.Printf("listmatch: get playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if !guard(w, &pl, requestPIN(r, "")) {
		return
	}

	songs, err := s.listSongs(ctx, pl.ID)
	if err != nil {
		log.Printf("listmatch: get playlist songs: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"playlist": pl,
		"songs":    songs,
	})
}

// handleUpdatePlaylist patches name and/or description. Fields are
// tri-state: absent leaves the value alone, a blank name is a no-op (the
// name can never become empty), a blank description clears it to null.
func (s *Server) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		PIN         string  `json:"pin"`
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
		log.Printf("listmatch: update playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if !guard(w, &pl, requestPIN(r, body.PIN)) {
		return
	}

	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if len(name) > maxNameLen {
			writeError(w, http.StatusBadRequest, "name must be between 1 and 100 characters")
			return
		}
		if name != "" {
			pl.Name = name
		}
	}
	if body.Description != nil {
		desc := strings.TrimSpace(*body.Description)
		if len(desc) > maxDescriptionLen {
			writeError(w, http.StatusBadRequest, "description is too long")
			return
		}
		if desc == "" {
			pl.Description = nil
		} else {
			pl.Description = &desc
		}
	}

	err = s.db.QueryRow(ctx, `
		UPDATE playlists
		SET name = $2,
			description = $3,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, pl.ID, pl.Name, pl.Description).Scan(&pl.UpdatedAt)
	if err != nil {
		log.Printf("listmatch: update playlist exec: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, pl)
}

// handleDeletePlaylist removes the playlist; songs and their comments go
// with it via cascade.
func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	pl, err := s.getPlaylistBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	if err != nil {
		log.Printf("listmatch: delete playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if !guard(w, &pl, requestPIN(r, "")) {
		return
	}

	if _, err := s.db.Exec(ctx, "DELETE FROM playlists WHERE id = $1", pl.ID); err != nil {
		log.Printf("listmatch: delete playlist exec: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listSongs returns a playlist's songs in canonical display order.
// Positions may carry gaps after deletions; created_at and id break any
// ties so every read sees the same total order.
func (s *Server) listSongs(ctx context.Context, playlistID string) ([]Song, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, playlist_id, title, artist, album, cover_image_url, itunes_id, position, created_at
		FROM songs
		WHERE playlist_id = $1
		ORDER BY position ASC, created_at ASC, id ASC
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := []Song{}
	for rows.Next() {
		var sg Song
		if err := rows.Scan(
			&sg.ID,
			&sg.PlaylistID,
			&sg.Title,
			&sg.Artist,
			&sg.Album,
			&sg.CoverImageURL,
			&sg.ITunesID,
			&sg.Position,
			&sg.CreatedAt,
		); err != nil {
			return nil, err
		}
		songs = append(songs, sg)
	}
	return songs, rows.Err()
}
