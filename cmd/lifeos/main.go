package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"lifeos/internal/backend"
	"lifeos/internal/cli"
	"lifeos/internal/dashboard"
	apphttp "lifeos/internal/http"
	"lifeos/internal/log"
	"lifeos/internal/remote"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)
	loc := cli.MustLocation(logger, cfg)

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	res := cli.InitBackend(ctx, logger, backendCfg)
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	session, err := dashboard.Open(ctx, res.Store,
		dashboard.WithLocation(loc),
		dashboard.WithLogger(logger.WithComponent(log.ComponentSession)))
	if err != nil {
		// A corrupt store must not be overwritten by an empty session.
		logger.Error("Failed to load dashboard state", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	deps := apphttp.Deps{
		Session: session,
		Ready:   res.Ready,
		Logger:  logger.WithComponent(log.ComponentHTTP),
	}
	if cfg.RemoteSaveURL != "" {
		deps.Pusher = remote.NewClient(cfg.RemoteSaveURL)
	}
	if res.Sync != nil {
		deps.Sync = res.Sync
	}

	srv, err := apphttp.NewServer(":"+cfg.Port, deps)
	if err != nil {
		logger.Error("Failed to create HTTP server", log.FieldError, err)
		os.Exit(1)
	}
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 20 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting lifeos server",
			"port", cfg.Port,
			"backend", cfg.DataBackend,
			"timezone", loc.String(),
			"remote_save", cfg.RemoteSaveURL != "",
			"sync_enabled", res.Sync != nil)
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
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
