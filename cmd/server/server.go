package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"kartibul/internal/catalog"
	"kartibul/internal/config"
	"kartibul/internal/coordinator"
	"kartibul/internal/handlers"
	localMiddleware "kartibul/internal/middleware"
	"kartibul/internal/store"
)

// setupServer wires the store, coordinator and handlers together and returns
// the configured router. Background workers (coordinator dispatch loop, idle
// room sweeper) run until ctx is cancelled.
func setupServer(ctx context.Context, cfg *config.ServerConfig) http.Handler {
	gameStore := store.NewMemoryStore(cfg)

	co := coordinator.New(gameStore, cfg)
	go co.Run(ctx)

	gameStore.StartSweeper(ctx, cfg.Server.SweepInterval)

	h := handlers.New(gameStore, co, catalog.New(cfg.Server.CardsDir), cfg)

	// Set up router
	r := chi.NewRouter()

	// Chi's built-in middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// No middleware.Timeout here: it would cancel the request context of
	// long-lived websocket connections.

	// Our custom middleware
	r.Use(localMiddleware.RequestSizeLimiter(cfg.Server.MaxRequestSize))
	r.Use(localMiddleware.SecurityHeaders())

	// Rate limiting
	rateLimiter := localMiddleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitBurst)
	r.Use(rateLimiter.Middleware())

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Routes
	r.Get("/ws", h.ServeWS)
	r.Get("/api/cards", h.ListCards)
	r.Get("/room/{code}/qr", h.RoomQR)

	// Health check endpoints
	r.Get("/health/live", h.HealthLive)
	r.Get("/health/ready", h.HealthReady)

	return r
}
