package playlist

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/xmannii/listmatch/internal/cover"
	"github.com/xmannii/listmatch/internal/lyrics"
)

// Search and lyrics are black-box collaborators. Their failures degrade to
// an "unavailable" marker; they never become a 5xx of ours. Successful
// responses are cached in redis for a while since both upstreams are slow
// and the same queries repeat.

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "search query is required")
		return
	}

	cacheKey := "search:" + strings.ToLower(query)
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	songs, err := s.catalog.Search(ctx, query)
	if err != nil {
		log.Printf("listmatch: search upstream: %v", err)
		writeJSON(w, http.StatusOK, map[string]any{
			"songs":       []any{},
			"unavailable": true,
		})
		return
	}

	body, err := json.Marshal(map[string]any{"songs": songs})
	if err != nil {
		log.Printf("listmatch: search marshal: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.cacheSet(ctx, cacheKey, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (s *Server) handleLyrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	artist := strings.TrimSpace(r.URL.Query().Get("artist"))
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if artist == "" || title == "" {
		writeError(w, http.StatusBadRequest, "artist and title are required")
		return
	}

	cacheKey := "lyrics:" + strings.ToLower(artist) + "/" + strings.ToLower(title)
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	text, err := s.lyrics.Fetch(ctx, artist, title)
	if errors.Is(err, lyrics.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":  "lyrics not found",
			"lyrics": nil,
		})
		return
	}
	if err != nil {
		log.Printf("listmatch: lyrics upstream: %v", err)
		writeJSON(w, http.StatusOK, map[string]any{
			"lyrics":      nil,
			"unavailable": true,
		})
		return
	}

	body, err := json.Marshal(map[string]any{"lyrics": text})
	if err != nil {
		log.Printf("listmatch: lyrics marshal: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.cacheSet(ctx, cacheKey, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// handleCover renders the fallback cover for playlists without artwork.
// Pure function of the name: no storage, no guard, fully deterministic.
func (s *Server) handleCover(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		name = "Playlist"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"coverUrl": cover.DataURL(name),
	})
}
