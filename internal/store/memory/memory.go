// Package memory keeps every collection in process memory. Records are lost
// on restart; the store is meant for demos, tests and the default backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"finboard/internal/core"
	"finboard/internal/notify"
	"finboard/internal/ports"
)

// table is a mutex-guarded list kept newest first.
type table[T any] struct {
	mu    sync.Mutex
	items []T
	id    func(T) string
	subs  notify.Broadcaster
}

func newTable[T any](id func(T) string, seed []T) *table[T] {
	return &table[T]{id: id, items: append([]T(nil), seed...)}
}

func (t *table[T]) Snapshot(_ context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]T(nil), t.items...), nil
}

func (t *table[T]) Subscribe() (<-chan struct{}, func()) {
	return t.subs.Subscribe()
}

func (t *table[T]) Add(_ context.Context, v T) error {
	id := t.id(v)
	t.mu.Lock()
	for _, existing := range t.items {
		if t.id(existing) == id {
			t.mu.Unlock()
			return fmt.Errorf("duplicate id %q", id)
		}
	}
	t.items = append([]T{v}, t.items...)
	t.mu.Unlock()
	t.subs.Notify()
	return nil
}

func (t *table[T]) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	idx := t.index(id)
	if idx < 0 {
		t.mu.Unlock()
		return ports.ErrNotFound
	}
	t.items = append(t.items[:idx:idx], t.items[idx+1:]...)
	t.mu.Unlock()
	t.subs.Notify()
	return nil
}

func (t *table[T]) Get(_ context.Context, id string) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var zero T
	idx := t.index(id)
	if idx < 0 {
		return zero, ports.ErrNotFound
	}
	return t.items[idx], nil
}

func (t *table[T]) Update(_ context.Context, v T) error {
	t.mu.Lock()
	idx := t.index(t.id(v))
	if idx < 0 {
		t.mu.Unlock()
		return ports.ErrNotFound
	}
	items := append([]T(nil), t.items...)
	items[idx] = v
	t.items = items
	t.mu.Unlock()
	t.subs.Notify()
	return nil
}

// index must be called with mu held.
func (t *table[T]) index(id string) int {
	for i, v := range t.items {
		if t.id(v) == id {
			return i
		}
	}
	return -1
}

// Store holds the four collections.
type Store struct {
	types *table[core.CategoryType]
	cats  *table[core.Category]
	txs   *table[core.Transaction]
	bills *table[core.RecurringBill]
}

// New returns an empty store.
func New() *Store {
	return newStore(nil, nil, nil, nil)
}

// NewSeeded returns a store preloaded with Fixtures.
func NewSeeded() *Store {
	return newStore(Fixtures())
}

func newStore(types []core.CategoryType, cats []core.Category, txs []core.Transaction, bills []core.RecurringBill) *Store {
	return &Store{
		types: newTable(func(v core.CategoryType) string { return v.ID }, types),
		cats:  newTable(func(v core.Category) string { return v.ID }, cats),
		txs:   newTable(func(v core.Transaction) string { return v.ID }, txs),
		bills: newTable(func(v core.RecurringBill) string { return v.ID }, bills),
	}
}

// AddCategoryType registers a category type. Types are read-only through
// the repository contract, so seeding goes through here.
func (s *Store) AddCategoryType(ctx context.Context, ct core.CategoryType) error {
	return s.types.Add(ctx, ct)
}

// Repositories exposes the store through the repository contracts.
func (s *Store) Repositories() ports.Repositories {
	return ports.Repositories{
		Categories:    s.cats,
		CategoryTypes: s.types,
		Transactions:  s.txs,
		Bills:         s.bills,
	}
}
