// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

// Command api is the entry point for the Loopspace HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/loopspace/backend/internal/api"
	"github.com/loopspace/backend/internal/core/channel"
	"github.com/loopspace/backend/internal/core/chapter"
	"github.com/loopspace/backend/internal/core/course"
	"github.com/loopspace/backend/internal/core/lesson"
	"github.com/loopspace/backend/internal/library/enrollment"
	"github.com/loopspace/backend/internal/platform/config"
	"github.com/loopspace/backend/internal/platform/constants"
	"github.com/loopspace/backend/internal/platform/migration"
	pgstore "github.com/loopspace/backend/internal/platform/postgres"
	redisstore "github.com/loopspace/backend/internal/platform/redis"
	"github.com/loopspace/backend/internal/platform/sec"
	"github.com/loopspace/backend/internal/social/event"
	"github.com/loopspace/backend/internal/social/feed"
	"github.com/loopspace/backend/internal/users/auth"
	"github.com/loopspace/backend/internal/users/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "loopspace"))
	slog.SetDefault(log)

	log.Info("[Loopspace] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "loopspace"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(rdb)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, resetTokenRepository, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	profileService := profile.NewService(userRepository, log)
	profileHandler := profile.NewHandler(profileService)

	channelRepository := channel.NewChannelRepository(pool)
	channelService := channel.NewService(channelRepository, log)
	channelHandler := channel.NewHandler(channelService)

	courseRepository := course.NewCourseRepository(pool)
	courseService := course.NewService(courseRepository, log)
	courseHandler := course.NewHandler(courseService)

	// The enrollment service doubles as the access oracle: chapter, lesson,
	// feed, and event services ask it who is enrolled and what is completed.
	enrollmentRepository := enrollment.NewEnrollmentRepository(pool)
	enrollmentService := enrollment.NewService(enrollmentRepository, log)
	enrollmentHandler := enrollment.NewHandler(enrollmentService)

	chapterRepository := chapter.NewChapterRepository(pool)
	chapterService := chapter.NewService(chapterRepository, enrollmentService, log)
	chapterHandler := chapter.NewHandler(chapterService)

	lessonRepository := lesson.NewLessonRepository(pool)
	lessonService := lesson.NewService(lessonRepository, enrollmentService, enrollmentService, log)
	lessonHandler := lesson.NewHandler(lessonService)

	feedRepository := feed.NewFeedRepository(pool)
	feedService := feed.NewService(feedRepository, enrollmentService, log)
	feedHandler := feed.NewHandler(feedService)

	eventRepository := event.NewEventRepository(pool)
	eventService := event.NewService(eventRepository, enrollmentService, log)
	eventHandler := event.NewHandler(eventService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       authHandler,
		Profile:    profileHandler,
		Channel:    channelHandler,
		Course:     courseHandler,
		Chapter:    chapterHandler,
		Lesson:     lessonHandler,
		Enrollment: enrollmentHandler,
		Feed:       feedHandler,
		Event:      eventHandler,
	}

	// The server context outlives startup. It feeds the rate limiter janitor,
	// which must keep running for the life of the process.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
