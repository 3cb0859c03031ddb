package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/enrollment-backend/internal/config"
	"github.com/stemsi/enrollment-backend/internal/database"
	"github.com/stemsi/enrollment-backend/internal/events"
	"github.com/stemsi/enrollment-backend/internal/handler"
	"github.com/stemsi/enrollment-backend/internal/logger"
	"github.com/stemsi/enrollment-backend/internal/registry"
	"github.com/stemsi/enrollment-backend/internal/router"
	"github.com/stemsi/enrollment-backend/internal/service"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Enrollment Backend")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Event Fan-out ─────────────────────────────────────────────────
	hub := events.NewHub(cfg.EventBufferSize, log)
	publishers := events.Multi{hub}

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
		publishers = append(publishers, events.NewRedisPublisher(rdb, cfg.RedisChannelPrefix))
	}

	// ─── Initialize Services ──────────────────────────────────────────
	reg := registry.New(cfg.InitialCourseCapacity)
	enrollmentService := service.NewEnrollmentService(reg, publishers, log)
	dashboardService := service.NewDashboardService(enrollmentService)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Course:    handler.NewCourseHandler(enrollmentService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		WS:        handler.NewWSHandler(hub, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// Stop accepting new HTTP requests (5s timeout). Hijacked WebSocket
	// connections are not tracked by Shutdown and end with the process.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().
		Int("courses", enrollmentService.CourseCount()).
		Int("stream_subscribers", hub.Len()).
		Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
