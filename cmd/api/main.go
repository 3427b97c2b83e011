package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dealmatch/internal/app"
	"dealmatch/internal/config"
	"dealmatch/internal/handlers"
	"dealmatch/internal/http"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API ranks investors for startup pitches and answers cited questions
// about individual investors.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Dealmatch API
//   description: |
//     Matching and retrieval API. Investors are recalled lexically and by vector
//     similarity, blended into one percentage and ranked; per-investor answers
//     cite the record passages they were built from.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel, "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			slog.Error("Shutdown completed with errors", "error", err)
		}
	}()

	router := http.NewRouter(&http.Deps{
		MatchService:    a.MatchService,
		InvestorService: a.InvestorService,
		Health:          handlers.NewHealthHandler(a.DB, a.Vectors, cfg.QdrantCollection),
	})

	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		slog.Error("API server failed", "error", err)
		return
	}
	slog.Info("API server stopped")
}
