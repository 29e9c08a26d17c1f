package main

import (
	"context"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/xmannii/listmatch/internal/catalog"
	"github.com/xmannii/listmatch/internal/config"
	"github.com/xmannii/listmatch/internal/lyrics"
	"github.com/xmannii/listmatch/internal/playlist"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("listmatch: pg: %v", err)
	}
	defer pool.Close()

	if err := playlist.AutoMigrate(ctx, pool); err != nil {
		log.Fatalf("listmatch: migrate: %v", err)
	}

	// Redis is optional: without it, search/lyrics responses just skip
	// the cache.
	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("listmatch: redis: %v", err)
		}
		rdb = redis.NewClient(opt)
		defer rdb.Close()
	}

	srv := playlist.NewServer(
		pool,
		rdb,
		catalog.NewClient(cfg.Catalog.BaseURL),
		lyrics.NewClient(cfg.Lyrics.BaseURL),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", srv.Router())

	log.Printf("listmatch on :%s", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, mux); err != nil {
		log.Fatalf("listmatch: serve: %v", err)
	}
}
