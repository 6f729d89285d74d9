// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/loopspace/backend/internal/core/channel"
	"github.com/loopspace/backend/internal/core/chapter"
	"github.com/loopspace/backend/internal/core/course"
	"github.com/loopspace/backend/internal/core/lesson"
	"github.com/loopspace/backend/internal/library/enrollment"
	"github.com/loopspace/backend/internal/platform/config"
	"github.com/loopspace/backend/internal/platform/constants"
	"github.com/loopspace/backend/internal/platform/middleware"
	"github.com/loopspace/backend/internal/social/event"
	"github.com/loopspace/backend/internal/social/feed"
	"github.com/loopspace/backend/internal/users/auth"
	"github.com/loopspace/backend/internal/users/profile"
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

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, and session lifecycle routes.
	Auth *auth.Handler

	// Profile handles the authenticated user's own profile.
	Profile *profile.Handler

	// Channel manages creator channels.
	Channel *channel.Handler

	// Course manages the course catalogue.
	Course *course.Handler

	// Chapter manages the ordered chapter structure inside courses.
	Chapter *chapter.Handler

	// Lesson manages the ordered lessons inside chapters.
	Lesson *lesson.Handler

	// Enrollment manages the user library and lesson progress.
	Enrollment *enrollment.Handler

	// Feed manages course community posts and comments.
	Feed *feed.Handler

	// Event manages the course calendar.
	Event *event.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/profile", h.Profile.Routes())

		// Content and community domains share the flat resource namespace
		// (/channels, /courses, /chapters, /lessons, /posts, /events).
		h.Channel.RegisterRoutes(api)
		h.Course.RegisterRoutes(api)
		h.Chapter.RegisterRoutes(api)
		h.Lesson.RegisterRoutes(api)
		h.Enrollment.RegisterRoutes(api)
		h.Feed.RegisterRoutes(api)
		h.Event.RegisterRoutes(api)
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
