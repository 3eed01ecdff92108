// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

// Command api is the entry point for the Taleweave HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the embedded SQLite store.
//  4. Run schema migrations (idempotent, synchronous).
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/taleweave/taleweave/internal/api"
	"github.com/taleweave/taleweave/internal/platform/config"
	"github.com/taleweave/taleweave/internal/platform/constants"
	"github.com/taleweave/taleweave/internal/platform/database/migrations"
	"github.com/taleweave/taleweave/internal/platform/migration"
	sqlitestore "github.com/taleweave/taleweave/internal/platform/sqlite"
	"github.com/taleweave/taleweave/internal/story/arc"
	"github.com/taleweave/taleweave/internal/story/chapter"
	"github.com/taleweave/taleweave/internal/story/episode"
	"github.com/taleweave/taleweave/internal/story/part"
	"github.com/taleweave/taleweave/internal/story/timeline"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "taleweave"))
	slog.SetDefault(log)

	log.Info("[Taleweave] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "taleweave"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("database_path", cfg.DatabasePath),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Embedded Store ─────────────────────────────────────────────────
	db, err := sqlitestore.Open(startupCtx, cfg.DatabasePath, log)
	must(log, err, "open sqlite store")
	defer func() {
		log.Info("closing sqlite store")
		if cerr := db.Close(); cerr != nil {
			log.Error("sqlite close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	// The server never accepts traffic against a half-migrated schema.
	runner := migration.NewRunner(db, migrations.All(), log)
	must(log, runner.Run(startupCtx), "run migrations")

	// ── 5. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return sqlitestore.Ping(context.Background(), db)
		},
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	timelineHandler := timeline.NewHandler(timeline.NewService(timeline.NewSQLiteRepository(db), log))
	arcHandler := arc.NewHandler(arc.NewService(arc.NewSQLiteRepository(db), log))
	episodeHandler := episode.NewHandler(episode.NewService(episode.NewSQLiteRepository(db), log))
	partHandler := part.NewHandler(part.NewService(part.NewSQLiteRepository(db), log))
	chapterHandler := chapter.NewHandler(chapter.NewService(chapter.NewSQLiteRepository(db), log))

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	// appCtx stops background middleware work (rate limiter cleanup) on exit.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Timeline:  timelineHandler,
		Arc:       arcHandler,
		Episode:   episodeHandler,
		Part:      partHandler,
		Chapter:   chapterHandler,
	}

	server := api.NewServer(appCtx, cfg, log, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
