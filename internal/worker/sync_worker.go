package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"lifeos/internal/amqp"
	"lifeos/internal/core"
	"lifeos/internal/sheets"
	"lifeos/internal/storage"
)

// Pusher sends a bundle to the remote save endpoint.
type Pusher interface {
	Push(ctx context.Context, b core.Bundle) error
}

// SyncWorker copies the stored bundle to the remote save endpoint and the
// ledger spreadsheet. Either target may be nil.
type SyncWorker struct {
	store    storage.Loader
	pusher   Pusher
	exporter sheets.LedgerExporter
	loc      *time.Location
	now      func() time.Time

	mu          sync.Mutex
	lastVersion int64
}

func NewSyncWorker(store storage.Loader, pusher Pusher, exporter sheets.LedgerExporter, loc *time.Location) *SyncWorker {
	if loc == nil {
		loc = time.Local
	}
	return &SyncWorker{
		store:    store,
		pusher:   pusher,
		exporter: exporter,
		loc:      loc,
		now:      time.Now,
	}
}

// HandleSyncMessage syncs the stored bundle unless a newer version was
// already synced. A returned error makes the consumer requeue the message.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.SnapshotSyncMessage) error {
	w.mu.Lock()
	last := w.lastVersion
	w.mu.Unlock()

	if msg.Version <= last {
		slog.DebugContext(ctx, "Skipping stale sync message",
			"message_id", msg.ID,
			"version", msg.Version,
			"last_version", last)
		return nil
	}

	slog.InfoContext(ctx, "Processing sync message",
		"message_id", msg.ID,
		"version", msg.Version)

	if err := w.Sync(ctx); err != nil {
		return fmt.Errorf("sync version %d: %w", msg.Version, err)
	}

	w.mu.Lock()
	if msg.Version > w.lastVersion {
		w.lastVersion = msg.Version
	}
	w.mu.Unlock()
	return nil
}

// LastVersion returns the newest version synced from a message.
func (w *SyncWorker) LastVersion() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastVersion
}

// Sync loads the bundle and sends it to every configured target. Targets
// are independent: a failing push does not stop the export.
func (w *SyncWorker) Sync(ctx context.Context) error {
	b, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load bundle: %w", err)
	}

	var errs []error
	if w.pusher != nil {
		if err := w.pusher.Push(ctx, b); err != nil {
			errs = append(errs, fmt.Errorf("push snapshot: %w", err))
		} else {
			slog.InfoContext(ctx, "Snapshot pushed to remote endpoint",
				"tasks", len(b.Tasks),
				"transactions", len(b.Transactions))
		}
	}
	if w.exporter != nil {
		if err := w.exporter.ExportLedger(ctx, b.Transactions, b.Balance); err != nil {
			errs = append(errs, fmt.Errorf("export ledger: %w", err))
		}
	}
	return errors.Join(errs...)
}

// StartupSync pushes the current bundle once, to recover from messages
// missed while the worker was down.
func (w *SyncWorker) StartupSync(ctx context.Context) error {
	slog.InfoContext(ctx, "Running startup sync")
	if err := w.Sync(ctx); err != nil {
		return fmt.Errorf("startup sync: %w", err)
	}
	return nil
}

// CheckStreak reports whether an active streak has not been marked today.
func (w *SyncWorker) CheckStreak(ctx context.Context) (bool, error) {
	b, err := w.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load bundle: %w", err)
	}
	if b.Streak == 0 || b.LastHabitDate == nil {
		return false, nil
	}

	today := w.now().In(w.loc)
	if core.SameDay(b.LastHabitDate.In(w.loc), today) {
		return false, nil
	}

	gap := core.DaysBetween(b.LastHabitDate.In(w.loc), today)
	if gap == 1 {
		slog.WarnContext(ctx, "Habit not marked today, streak at risk", "streak", b.Streak)
		return true, nil
	}
	slog.InfoContext(ctx, "Streak already broken", "streak", b.Streak, "days_since_last", gap)
	return false, nil
}
