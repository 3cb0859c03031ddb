package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/enrollment-backend/internal/config"
	"github.com/stemsi/enrollment-backend/internal/events"
	"github.com/stemsi/enrollment-backend/internal/logger"
	"github.com/stemsi/enrollment-backend/internal/menu"
	"github.com/stemsi/enrollment-backend/internal/registry"
	"github.com/stemsi/enrollment-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	// stdout belongs to the menu; logs go to stderr.
	log := logger.SetupWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	// ─── Initialize Service ────────────────────────────────────────────
	reg := registry.New(cfg.InitialCourseCapacity)
	enrollmentService := service.NewEnrollmentService(reg, events.Nop{}, log)

	// ─── Run Menu ──────────────────────────────────────────────────────
	// Prompts only make sense when a person is typing.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	m := menu.New(os.Stdin, os.Stdout, enrollmentService, interactive)
	if err := m.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Menu stopped unexpectedly")
	}
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
