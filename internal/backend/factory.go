package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lifeos/internal/amqp"
	"lifeos/internal/services"
	"lifeos/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

type closer interface{ Close() error }
type pinger interface {
	Ping(ctx context.Context) error
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	kv, err := f.createKV(config)
	if err != nil {
		return nil, err
	}

	result := &BackendResult{
		Store: storage.NewKVStore(kv),
		Ready: func(context.Context) error { return nil },
	}
	var cleanups []CleanupFunc
	if c, ok := kv.(closer); ok {
		cleanups = append(cleanups, c.Close)
	}
	if p, ok := kv.(pinger); ok {
		result.Ready = p.Ping
	}

	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			// Saves stay local; the worker's periodic resync catches up.
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without sync", "error", err)
		} else {
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
			svc := services.NewSnapshotService(result.Store, client)
			result.Store = svc
			result.Sync = svc
			cleanups = append(cleanups, client.Close)
		}
	}

	result.Cleanup = func() error {
		var errs []error
		for i := len(cleanups) - 1; i >= 0; i-- {
			if err := cleanups[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	f.logger.InfoContext(ctx, "Initialized data backend",
		"type", config.Type,
		"sync_enabled", result.Sync != nil)
	return result, nil
}

func (f *DefaultFactory) createKV(config Config) (storage.KV, error) {
	switch config.Type {
	case MemoryBackend:
		return storage.NewMemoryKV(), nil
	case SQLiteBackend:
		kv, err := storage.NewSQLiteKV(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		f.logger.Info("Opened SQLite store", "db_path", config.SQLiteDBPath)
		return kv, nil
	case RedisBackend:
		kv, err := storage.NewRedisKV(config.RedisAddr, config.RedisPassword, config.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis store: %w", err)
		}
		f.logger.Info("Connected to Redis store", "addr", config.RedisAddr, "db", config.RedisDB)
		return kv, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
