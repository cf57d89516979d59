package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"lifeos/internal/core"
	"lifeos/internal/storage"
)

// SyncPublisher announces stored bundle versions to the sync worker.
type SyncPublisher interface {
	PublishSnapshotSync(ctx context.Context, version int64) error
}

// SnapshotService orchestrates bundle saves across the local store and AMQP.
// It satisfies storage.Store so the session can use it in place of the
// plain store.
type SnapshotService struct {
	store     storage.Store
	publisher SyncPublisher
	now       func() time.Time

	mu          sync.Mutex
	lastVersion int64
}

var _ storage.Store = (*SnapshotService)(nil)

// NewSnapshotService wraps store. publisher may be nil, in which case saves
// stay local.
func NewSnapshotService(store storage.Store, publisher SyncPublisher) *SnapshotService {
	return &SnapshotService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *SnapshotService) Load(ctx context.Context) (core.Bundle, error) {
	return s.store.Load(ctx)
}

// Save writes the bundle locally, then publishes a sync message. Publishing
// is best effort: the bundle is already stored when it fails.
func (s *SnapshotService) Save(ctx context.Context, b core.Bundle) error {
	if err := s.store.Save(ctx, b); err != nil {
		return fmt.Errorf("save bundle: %w", err)
	}

	version := s.nextVersion()
	if err := s.publish(ctx, version); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"version", version, "error", err)
	}
	return nil
}

// RequestSync publishes a sync message for the current stored bundle without
// saving. It reports publish errors, unlike Save.
func (s *SnapshotService) RequestSync(ctx context.Context) (int64, error) {
	if s.publisher == nil {
		return 0, errors.New("sync publisher not configured")
	}
	version := s.nextVersion()
	if err := s.publish(ctx, version); err != nil {
		return 0, err
	}
	return version, nil
}

// nextVersion is clock based so it keeps growing across restarts, and
// strictly increasing within the process.
func (s *SnapshotService) nextVersion() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.now().UnixMicro()
	if v <= s.lastVersion {
		v = s.lastVersion + 1
	}
	s.lastVersion = v
	return v
}

func (s *SnapshotService) publish(ctx context.Context, version int64) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.publisher.PublishSnapshotSync(ctx, version)
}

// Close closes the publisher and the store when they hold resources.
func (s *SnapshotService) Close() error {
	var errs []error
	if c, ok := s.publisher.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	if c, ok := s.store.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	return errors.Join(errs...)
}
