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

// Comments are intentionally not PIN-gated: anyone who can name a song id
// may read and write them. That is a policy choice, not an oversight —
// the PIN protects the playlist's structure, not the discussion.

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	songID := chi.URLParam(r, "songId")

	if !validUUID(songID) {
		writeError(w, http.StatusNotFound, "song not found")
		return
	}
	if ok, err := s.songExists(ctx, songID); err != nil {
		log.Printf("listmatch: list comments song check: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	} else if !ok {
		writeError(w, http.StatusNotFound, "song not found")
		return
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, song_id, author_name, content, created_at
		FROM comments
		WHERE song_id = $1
		ORDER BY created_at DESC, id DESC
	`, songID)
	if err != nil {
		log.Printf("listmatch: list comments: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.SongID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
			log.Printf("listmatch: list comments scan: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		log.Printf("listmatch: list comments rows: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// handleAddComment appends a comment to a song. Comment-only activity does
// not bump the playlist's updated_at.
func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	songID := chi.URLParam(r, "songId")

	if !validUUID(songID) {
		writeError(w, http.StatusNotFound, "song not found")
		return
	}

	var body struct {
		AuthorName string `json:"authorName"`
		Content    string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body.AuthorName = strings.TrimSpace(body.AuthorName)
	body.Content = strings.TrimSpace(body.Content)

	if body.AuthorName == "" || len(body.AuthorName) > maxAuthorNameLen {
		writeError(w, http.StatusBadRequest, "author name must be between 1 and 50 characters")
		return
	}
	if body.Content == "" || len(body.Content) > maxCommentLen {
		writeError(w, http.StatusBadRequest, "comment must be between 1 and 500 characters")
		return
	}

	if ok, err := s.songExists(ctx, songID); err != nil {
		log.Printf("listmatch: add comment song check: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	} else if !ok {
		writeError(w, http.StatusNotFound, "song not found")
		return
	}

	var c Comment
	err := s.db.QueryRow(ctx, `
		INSERT INTO comments (song_id, author_name, content)
		VALUES ($1,$2,$3)
		RETURNING id, song_id, author_name, content, created_at
	`, songID, body.AuthorName, body.Content).Scan(
		&c.ID,
		&c.SongID,
		&c.AuthorName,
		&c.Content,
		&c.CreatedAt,
	)
	if err != nil {
		log.Printf("listmatch: add comment: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) songExists(ctx context.Context, songID string) (bool, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		SELECT id FROM songs WHERE id = $1
	`, songID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
