package events

import (
	"sync"

	"github.com/balajimuthu0107/codance/internal/models"
)

// MemoryBus delivers events synchronously to every registered listener in
// registration order. It is sized for on the order of a hundred concurrent
// SSE subscribers without any throttling.
type MemoryBus struct {
	mu        sync.Mutex
	nextID    int
	order     []int
	listeners map[int]Listener
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		listeners: make(map[int]Listener),
	}
}

func (b *MemoryBus) Publish(event models.AppEvent) {
	// Snapshot under the lock so a listener can unsubscribe itself (or
	// others) mid-delivery without corrupting the registry.
	b.mu.Lock()
	snapshot := make([]Listener, 0, len(b.order))
	for _, id := range b.order {
		if fn, ok := b.listeners[id]; ok {
			snapshot = append(snapshot, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range snapshot {
		fn(event)
	}
}

func (b *MemoryBus) Subscribe(fn Listener) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.order = append(b.order, id)
	b.listeners[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.listeners[id]; !ok {
			return
		}
		delete(b.listeners, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// ListenerCount reports the current number of subscribers. Exposed for the
// stats endpoint and leak checks in tests.
func (b *MemoryBus) ListenerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = make(map[int]Listener)
	b.order = nil
	return nil
}
