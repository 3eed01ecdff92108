// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

# Route Shape

Routes mirror the story hierarchy: each level nests under its parent's
identity path, so a chapter URL spells out the full human-readable address
of the chapter.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taleweave/taleweave/internal/platform/config"
	"github.com/taleweave/taleweave/internal/platform/constants"
	"github.com/taleweave/taleweave/internal/platform/middleware"
	"github.com/taleweave/taleweave/internal/story/arc"
	"github.com/taleweave/taleweave/internal/story/chapter"
	"github.com/taleweave/taleweave/internal/story/episode"
	"github.com/taleweave/taleweave/internal/story/part"
	"github.com/taleweave/taleweave/internal/story/timeline"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when the store is healthy.
	Readiness http.HandlerFunc

	// Timeline is the root level of the story hierarchy.
	Timeline *timeline.Handler

	// Arc manages the arcs of a timeline.
	Arc *arc.Handler

	// Episode manages the episodes of an arc.
	Episode *episode.Handler

	// Part manages the optional chapter groupings of an episode.
	Part *part.Handler

	// Chapter manages the leaf scenes of an episode.
	Chapter *chapter.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// The hierarchy nests each level under its parent's identity path.
	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/timelines", func(timelines chi.Router) {
			h.Timeline.RegisterRoutes(timelines)

			timelines.Route("/{timeline}/arcs", func(arcs chi.Router) {
				h.Arc.RegisterRoutes(arcs)

				arcs.Route("/{arc}/episodes", func(episodes chi.Router) {
					h.Episode.RegisterRoutes(episodes)

					episodes.Route("/{episode}/parts", func(parts chi.Router) {
						h.Part.RegisterRoutes(parts)
					})
					episodes.Route("/{episode}/chapters", func(chapters chi.Router) {
						h.Chapter.RegisterRoutes(chapters)
					})
				})
			})
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
