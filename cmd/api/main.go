package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"book-catalog-api/internal/config"
	"book-catalog-api/pkg/container"
	"book-catalog-api/pkg/logger"
)

func main() {
	// .env is optional; production uses the real environment
	envFileErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envFileErr != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := Serve(cfg); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
}

// Serve builds the container, runs the HTTP server and shuts it down
// gracefully on SIGINT or SIGTERM
func Serve(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer appContainer.Cleanup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        SetupRouter(appContainer),
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.App.Port).
			Str("env", cfg.App.Environment).
			Msg("Server started")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
