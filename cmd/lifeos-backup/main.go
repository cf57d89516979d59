package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"lifeos/internal/backup"
	"lifeos/internal/cli"
	"lifeos/internal/log"
)

// lifeos-backup is the remote save endpoint: it keeps the last bundle it
// was sent in a JSON file.
func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentBackup)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	store := backup.NewFileStore(cfg.BackupFile)
	srv := &http.Server{
		Addr:              ":" + cfg.BackupPort,
		Handler:           backup.NewHandler(store, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting backup server", "port", cfg.BackupPort, "file", store.Path())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cli.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Backup server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Backup server stopped")
}
