// Package cli provides common CLI initialization utilities shared by
// cmd/lifeos, cmd/lifeos-worker and cmd/lifeos-backup.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lifeos/internal/backend"
	"lifeos/internal/config"
	"lifeos/internal/log"
)

// ShutdownTimeout bounds how long servers get to drain on exit.
const ShutdownTimeout = 10 * time.Second

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger creates the process logger at LOG_LEVEL and makes it the
// slog default.
func SetupLogger(component string) *log.Logger {
	logger := log.NewForLevel(os.Getenv("LOG_LEVEL"), component)
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// MustLocation resolves the configured timezone or exits.
func MustLocation(logger *log.Logger, cfg *config.Config) *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		logger.Error("Failed to load timezone", log.FieldError, err)
		os.Exit(1)
	}
	return loc
}

// InitBackend creates the persistence stack or exits the process on failure.
func InitBackend(ctx context.Context, logger *log.Logger, cfg backend.Config) *backend.BackendResult {
	res, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize data backend", log.FieldError, err, "type", cfg.Type)
		os.Exit(1)
	}
	return res
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down")
	}()
	return ctx, stop
}
