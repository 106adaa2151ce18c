package main

import (
	"context"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maliwan-flora/api/internal/config"
	"github.com/maliwan-flora/api/internal/database"
	"github.com/maliwan-flora/api/internal/router"
	"github.com/maliwan-flora/api/internal/upload"
	"github.com/maliwan-flora/api/internal/ws"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	queries := database.New(pool)

	hub := ws.NewHub()
	go hub.Run()

	slips := newSlipStore(cfg)

	r := router.New(cfg, queries, pool, hub, slips)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}

// newSlipStore prefers the remote upload service when configured and
// falls back to local disk when a remote upload fails.
func newSlipStore(cfg *config.Config) upload.Storer {
	local := upload.NewLocalStore(cfg.SlipLocalDir, cfg.SlipPublicURL)
	if cfg.SlipUploadURL == "" {
		log.Println("SLIP_UPLOAD_URL not set, storing payment slips on local disk")
		return local
	}
	remote := upload.NewRemoteStore(cfg.SlipUploadURL, cfg.SlipUploadKey)
	return upload.NewFallbackStore(remote, local)
}
