package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

// handleAddSong appends a song to the end of the playlist. The position is
// computed inside the INSERT (max+1 within the same statement); if two
// appends still race, the deferred unique constraint rejects one at commit
// and we retry once.
func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	var body struct {
		Title         string `json:"title"`
		Artist        string `json:"artist"`
		Album         string `json:"album"`
		CoverImageURL string `json:"coverImageUrl"`
		ITunesID      string `json:"itunesId"`
		PIN           string `json:"pin"`
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
		log.Printf("listmatch: add song: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if !guard(w, &pl, requestPIN(r, body.PIN)) {
		return
	}

	body.Title = strings.TrimSpace(body.Title)
	body.Artist = strings.TrimSpace(body.Artist)
	body.Album = strings.TrimSpace(body.Album)
	body.CoverImageURL = strings.TrimSpace(body.CoverImageURL)
	body.ITunesID = strings.TrimSpace(body.ITunesID)

	if body.Title == "" || len(body.Title) > maxTitleLen {
		writeError(w, http.StatusBadRequest, "title must be between 1 and 300 characters")
		return
	}
	if body.Artist == "" || len(body.Artist) > maxArtistLen {
		writeError(w, http.StatusBadRequest, "artist must be between 1 and 200 characters")
		return
	}

	var sg Song
	for attempt := 0; ; attempt++ {
		sg, err = s.insertSong(ctx, pl.ID, body.Title, body.Artist, body.Album, body.CoverImageURL, body.ITunesID)
		if err == nil {
			break
		}
		// Position race with a concurrent append: one bounded retry.
		if isUniqueViolation(err) && attempt == 0 {
			continue
		}
		if isUniqueViolation(err) {
			writeError(w, http.StatusConflict, "concurrent update, please retry")
			return
		}
		log.Printf("listmatch: add song insert: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusCreated, sg)
}

func (s *Server) insertSong(ctx context.Context, playlistID, title, artist, album, coverImageURL, itunesID string) (Song, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Song{}, err
	}
	defer tx.Rollback(ctx)

	var sg Song
	err = tx.QueryRow(ctx, `
      INSERT INTO songs (
          playlist_id,
          title,
          artist,
          album,
          cover_image_url,
          itunes_id,
          position
      )
      VALUES (
          $1, $2, $3, $4, $5, $6,
          COALESCE(
            (SELECT MAX(position)+1 FROM songs WHERE playlist_id = $1),
            0
          )
      )
      RETURNING id, playlist_id, title, artist, album, cover_image_url, itunes_id, position, created_at
  `, playlistID, title, artist, album, coverImageURL, itunesID).Scan(
		&sg.ID,
		&sg.PlaylistID,
		&sg.Title,
		&sg.Artist,
		&sg.Album,
		&sg.CoverImageURL,
		&sg.ITunesID,
		&sg.Position,
		&sg.CreatedAt,
	)
	if err != nil {
		return Song{}, err
	}

	if err := bumpUpdatedAt(ctx, tx, playlistID); err != nil {
		return Song{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Song{}, err
	}
	return sg, nil
}

// handleDeleteSong removes one song from the playlist. Remaining songs
// keep their positions; gaps are fine and only a reorder re-densifies.
// The song must belong to THIS playlist, otherwise it reads as not found.
func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	songID := chi.URLParam(r, "songId")

	if !validUUID(songID) {
		writeError(w, http.StatusNotFound, "song not found in this playlist")
		return
	}

	pl, err := s.getPlaylistBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	if err != nil {
		log.Printf("listmatch: delete song: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if !guard(w, &pl, requestPIN(r, "")) {
		return
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		log.Printf("listmatch: delete song begin tx: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		DELETE FROM songs
		WHERE id = $1 AND playlist_id = $2
	`, songID, pl.ID)
	if err != nil {
		log.Printf("listmatch: delete song exec: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if tag.RowsAffected() == 0 {
		writeError(w, http.StatusNotFound, "song not found in this playlist")
		return
	}

	if err := bumpUpdatedAt(ctx, tx, pl.ID); err != nil {
		log.Printf("listmatch: delete song bump: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("listmatch: delete song commit: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
