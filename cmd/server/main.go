package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mailgate/mailgate/internal/config"
	"github.com/mailgate/mailgate/internal/database"
	"github.com/mailgate/mailgate/internal/email"
	"github.com/mailgate/mailgate/internal/handler"
	"github.com/mailgate/mailgate/internal/logger"
	"github.com/mailgate/mailgate/internal/middleware"
	"github.com/mailgate/mailgate/internal/router"
	"github.com/mailgate/mailgate/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", "0.1.0").Str("mode", cfg.Email.Mode).Msg("starting MailGate server")

	// Build the outbound transport; an unknown mode or missing transport
	// settings stop the server here rather than failing every request
	sender, err := email.New(context.Background(), cfg.Email, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize email transport")
	}
	mode, _ := email.ParseMode(cfg.Email.Mode)
	log.Info().Str("mode", string(mode)).Msg("email transport initialized")

	// Connect to Redis only when rate limiting needs it
	var rdb *database.Redis
	if cfg.Security.RateLimiting.Enabled {
		rdb, err = database.NewRedis(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("connected to Redis")
	}

	// Initialize service
	mailSvc := service.NewMailService(sender, mode, log)

	// Initialize handlers
	h := handler.New(rdb, log, cfg, mailSvc)

	// Initialize middleware
	mw := middleware.New(rdb, log, cfg)

	// Set up router
	r := router.New(h, mw, cfg)

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
