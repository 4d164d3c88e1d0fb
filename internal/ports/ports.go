// Package ports defines the repository contracts the reporting views and the
// ledger service consume. Implementations live in store/memory and storage.
package ports

import (
	"context"
	"errors"

	"finboard/internal/core"
)

// ErrNotFound is returned when an id does not match any record.
var ErrNotFound = errors.New("not found")

// Watchable exposes change notifications. Each mutation delivers at most one
// pending signal per subscriber; slow subscribers see coalesced signals.
// Calling cancel closes the channel.
type Watchable interface {
	Subscribe() (<-chan struct{}, func())
}

// Reader returns a copy of the current collection, newest first.
type Reader[T any] interface {
	Watchable
	Snapshot(ctx context.Context) ([]T, error)
}

// Repository adds mutation to Reader. Add prepends the record.
type Repository[T any] interface {
	Reader[T]
	Add(ctx context.Context, v T) error
	Delete(ctx context.Context, id string) error
}

type (
	CategoryRepository     = Repository[core.Category]
	CategoryTypeRepository = Reader[core.CategoryType]
	TransactionRepository  = Repository[core.Transaction]
)

// BillRepository also supports lookup and full replacement, used when a
// bill's next due date advances.
type BillRepository interface {
	Repository[core.RecurringBill]
	Get(ctx context.Context, id string) (core.RecurringBill, error)
	Update(ctx context.Context, b core.RecurringBill) error
}

// Repositories groups one implementation of every collection.
type Repositories struct {
	Categories    CategoryRepository
	CategoryTypes CategoryTypeRepository
	Transactions  TransactionRepository
	Bills         BillRepository
}
