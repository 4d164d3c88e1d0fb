// Package cache holds derived views keyed by request parameters, expiring
// them by age and dropping them whenever the data they were built from
// changes.
package cache

import (
	"log/slog"
	"sync"
	"time"

	"finboard/internal/ports"
)

// Cache defines a generic cache interface
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Purge()
	Size() int
}

// Cleaner is a cache that can drop expired and stale entries.
type Cleaner interface {
	CleanExpired() int
	Purge()
}

// Manager runs periodic expiry and change-driven invalidation for the
// caches registered with it.
type Manager struct {
	mu     sync.Mutex
	caches []Cleaner

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewManager creates a new cache manager
func NewManager() *Manager {
	return &Manager{stop: make(chan struct{})}
}

// Register adds a cache to the manager.
func (m *Manager) Register(c Cleaner) {
	m.mu.Lock()
	m.caches = append(m.caches, c)
	m.mu.Unlock()
}

func (m *Manager) each(fn func(Cleaner)) {
	m.mu.Lock()
	caches := append([]Cleaner(nil), m.caches...)
	m.mu.Unlock()
	for _, c := range caches {
		fn(c)
	}
}

// PurgeAll drops every entry of every registered cache.
func (m *Manager) PurgeAll() {
	m.each(func(c Cleaner) { c.Purge() })
}

// StartCleanup begins periodic expiry of all registered caches.
func (m *Manager) StartCleanup(interval time.Duration) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				total := 0
				m.each(func(c Cleaner) { total += c.CleanExpired() })
				if total > 0 {
					slog.Debug("Cache cleanup completed", "entries_removed", total)
				}
			case <-m.stop:
				return
			}
		}
	}()
}

// InvalidateOn purges every registered cache each time one of sources
// signals a change.
func (m *Manager) InvalidateOn(sources ...ports.Watchable) {
	for _, src := range sources {
		ch, cancel := src.Subscribe()
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			defer cancel()
			for {
				select {
				case <-m.stop:
					return
				case _, ok := <-ch:
					if !ok {
						return
					}
					m.PurgeAll()
				}
			}
		}()
	}
}

// Stop ends cleanup and invalidation goroutines and waits for them.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
	m.wg.Wait()
}
