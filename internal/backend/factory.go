package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finboard/internal/amqp"
	"finboard/internal/ports"
	"finboard/internal/storage"
	"finboard/internal/store/memory"
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
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(ctx, config)
	case MemoryBackend:
		result, err = f.createMemoryBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	f.attachAMQP(result, config)
	return result, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	sqliteRepo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	repos := sqliteRepo.Repositories()
	if config.SeedFixtures {
		seeded, err := seedIfEmpty(ctx, repos)
		if err != nil {
			sqliteRepo.Close()
			return nil, fmt.Errorf("seed fixtures: %w", err)
		}
		if seeded {
			f.logger.Info("Seeded SQLite database with fixtures", "db_path", config.SQLiteDBPath)
		}
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Repositories: repos,
		Cleanup:      sqliteRepo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config) (*BackendResult, error) {
	var store *memory.Store
	if config.SeedFixtures {
		store = memory.NewSeeded()
	} else {
		store = memory.New()
		types, _, _, _ := memory.Fixtures()
		for i := len(types) - 1; i >= 0; i-- {
			if err := store.AddCategoryType(ctx, types[i]); err != nil {
				return nil, fmt.Errorf("register category type %s: %w", types[i].ID, err)
			}
		}
	}

	f.logger.Info("Initialized memory backend", "seeded", config.SeedFixtures)

	return &BackendResult{
		Repositories: store.Repositories(),
		Cleanup:      func() error { return nil },
	}, nil
}

// attachAMQP connects the optional change publisher. A broker that cannot be
// reached is logged and the backend keeps working without notifications.
func (f *DefaultFactory) attachAMQP(result *BackendResult, config Config) {
	if config.AMQPURL == "" {
		return
	}

	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without change notifications", "error", err)
		return
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)

	result.Publisher = client
	result.Consumer = client
	cleanup := result.Cleanup
	result.Cleanup = func() error {
		return errors.Join(client.Close(), cleanup())
	}
}

// seedIfEmpty inserts the fixture categories, transactions and bills when
// none exist yet. Records are added oldest first so that snapshots come back
// in fixture order.
func seedIfEmpty(ctx context.Context, repos ports.Repositories) (bool, error) {
	cats, err := repos.Categories.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	txs, err := repos.Transactions.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	if len(cats) > 0 || len(txs) > 0 {
		return false, nil
	}

	_, fixtureCats, fixtureTxs, fixtureBills := memory.Fixtures()
	for i := len(fixtureCats) - 1; i >= 0; i-- {
		if err := repos.Categories.Add(ctx, fixtureCats[i]); err != nil {
			return false, err
		}
	}
	for i := len(fixtureTxs) - 1; i >= 0; i-- {
		if err := repos.Transactions.Add(ctx, fixtureTxs[i]); err != nil {
			return false, err
		}
	}
	for i := len(fixtureBills) - 1; i >= 0; i-- {
		if err := repos.Bills.Add(ctx, fixtureBills[i]); err != nil {
			return false, err
		}
	}
	return true, nil
}
