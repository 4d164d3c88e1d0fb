package backend

import (
	"context"

	"finboard/internal/amqp"
	"finboard/internal/ports"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// BackendResult contains the repositories, an optional change publisher and
// a cleanup function that is always safe to call.
type BackendResult struct {
	Repositories ports.Repositories
	// Publisher is nil when AMQP is not configured or unreachable.
	Publisher amqp.Publisher
	// Consumer is the same client as Publisher, exposed for workers.
	Consumer *amqp.Client
	Cleanup  CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// SeedFixtures loads the demo data set into an empty store.
	SeedFixtures bool

	// Optional change notifications
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
