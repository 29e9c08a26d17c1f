package playlist

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/xmannii/listmatch/internal/catalog"
	"github.com/xmannii/listmatch/internal/lyrics"
)

// Querier is the subset of pgxpool.Pool the handlers need. Tests inject
// mocks through it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Server struct {
	db      Querier
	rdb     *redis.Client
	catalog *catalog.Client
	lyrics  *lyrics.Client
}

func NewServer(db Querier, rdb *redis.Client, cat *catalog.Client, lyr *lyrics.Client) *Server {
	return &Server{
		db:      db,
		rdb:     rdb,
		catalog: cat,
		lyrics:  lyr,
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(requestLogger)
	r.Use(countRequests)
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)

	r.Post("/playlists", s.handleCreatePlaylist)
	r.Get("/playlists/{slug}", s.handleGetPlaylist)
	r.Patch("/playlists/{slug}", s.handleUpdatePlaylist)
	r.Delete("/playlists/{slug}", s.handleDeletePlaylist)
	r.Get("/playlists/{slug}/cover", s.handleCover)

	r.Post("/playlists/{slug}/songs", s.handleAddSong)
	r.Delete("/playlists/{slug}/songs/{songId}", s.handleDeleteSong)
	r.Put("/playlists/{slug}/songs/order", s.handleReorderSongs)

	r.Get("/songs/{songId}/comments", s.handleListComments)
	r.Post("/songs/{songId}/comments", s.handleAddComment)

	r.Get("/search", s.handleSearch)
	r.Get("/lyrics", s.handleLyrics)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "listmatch",
	})
}
