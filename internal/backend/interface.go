package backend

import (
	"context"

	"lifeos/internal/services"
	"lifeos/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult is a ready-to-use persistence stack.
type BackendResult struct {
	// Store is what the session saves through. With AMQP configured it is
	// the snapshot service, which announces every save.
	Store storage.Store
	// Sync is set when saves are announced over AMQP.
	Sync *services.SnapshotService
	// Ready reports whether the underlying store is reachable.
	Ready   func(ctx context.Context) error
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	SQLiteDBPath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Optional; empty disables save announcements.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
	RedisBackend  BackendType = "redis"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, RedisBackend:
		return true
	default:
		return false
	}
}
