package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/blog-comment-section/internal/api"
	"github.com/blog-comment-section/internal/config"
	"github.com/blog-comment-section/internal/repository"
	"github.com/blog-comment-section/internal/service"
	"github.com/blog-comment-section/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; the environment may already be set
	envErr := godotenv.Load()

	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting comment section server...")
	if envErr != nil {
		log.Debug().Err(envErr).Msg("No .env file loaded")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize repositories
	repos := repository.New(&cfg.API, log)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	// Start idle section sweeper
	services.Sections.StartSweeper(context.Background())

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("api_base_url", cfg.API.BaseURL).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	services.Sections.StopSweeper()

	log.Info().Msg("Server exited gracefully")
}
