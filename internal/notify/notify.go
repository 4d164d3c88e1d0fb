// Package notify fans change signals out to subscribers.
package notify

import "sync"

// Broadcaster delivers a signal to every subscriber on Notify. Each
// subscriber channel holds one pending signal, so bursts coalesce and
// Notify never blocks. The zero value is ready to use.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]chan struct{}
}

// Subscribe registers a listener. The returned cancel func unregisters it
// and closes the channel; calling it more than once is safe.
func (b *Broadcaster) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	if b.subs == nil {
		b.subs = make(map[int]chan struct{})
	}
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Notify signals every subscriber.
func (b *Broadcaster) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Len reports the number of active subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
