package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"lifeos/internal/amqp"
	"lifeos/internal/backend"
	"lifeos/internal/cli"
	"lifeos/internal/config"
	"lifeos/internal/log"
	"lifeos/internal/remote"
	"lifeos/internal/scheduler"
	"lifeos/internal/sheets"
	gsheet "lifeos/internal/sheets/google"
	"lifeos/internal/worker"
)

// lifeos-worker copies the shared store to the remote save endpoint and the
// ledger spreadsheet: on every announced save, periodically, and at startup.
// It also warns once a day when the habit streak is about to break.
func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("Starting lifeos-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	loc := cli.MustLocation(logger, cfg)
	if cfg.DataBackend == config.BackendMemory {
		logger.Error("The worker needs a shared data backend (sqlite or redis)", "backend", cfg.DataBackend)
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	// The worker only reads; it must not announce saves of its own.
	backendCfg.AMQPURL = ""
	res := cli.InitBackend(ctx, logger, backendCfg)
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	var pusher worker.Pusher
	if cfg.RemoteSaveURL != "" {
		client := remote.NewClient(cfg.RemoteSaveURL)
		pusher = client
		logger.Info("Remote save endpoint configured", "url", client.URL())
	}

	var exporter sheets.LedgerExporter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		exporter = client
		logger.Info("Google Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	if pusher == nil && exporter == nil {
		logger.Error("Nothing to sync: set REMOTE_SAVE_URL or GOOGLE_SPREADSHEET_ID")
		os.Exit(1)
	}

	syncWorker := worker.NewSyncWorker(res.Store, pusher, exporter, loc)
	if err := syncWorker.StartupSync(ctx); err != nil {
		// The periodic resync retries.
		logger.Error("Startup sync failed", log.FieldError, err)
	}

	sched := scheduler.New(ctx, loc)
	if _, err := sched.ScheduleInterval("resync", cfg.SyncInterval, syncWorker.Sync); err != nil {
		logger.Error("Failed to schedule resync", log.FieldError, err)
		os.Exit(1)
	}
	if _, err := sched.ScheduleDaily("streak-reminder", cfg.ReminderTime, func(ctx context.Context) error {
		_, err := syncWorker.CheckStreak(ctx)
		return err
	}); err != nil {
		logger.Error("Failed to schedule streak reminder", log.FieldError, err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sched.Start()
		logger.Info("Scheduler started",
			"jobs", sched.Entries(),
			"sync_interval", cfg.SyncInterval,
			"reminder_time", cfg.ReminderTime)
		<-gctx.Done()
		sched.Stop()
		return nil
	})

	if cfg.SyncEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()

		g.Go(func() error {
			err := client.ConsumeSnapshotSync(gctx, syncWorker.HandleSyncMessage)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else {
		logger.Info("AMQP disabled - relying on periodic resync")
	}

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete", "last_version", syncWorker.LastVersion())
}
