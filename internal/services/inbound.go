package services

import (
	"sync"

	"github.com/balajimuthu0107/codance/internal/models"
)

// InboundBufferCapacity bounds the webhook receiver's in-memory event ring.
const InboundBufferCapacity = 25

// InboundBuffer is a fixed-capacity ring of events received from the
// external automation tool, newest first. Accept and trim happen under one
// lock so the capacity invariant holds on every insert. Buffered events are
// intentionally not republished onto the internal event bus.
type InboundBuffer struct {
	mu       sync.Mutex
	capacity int
	entries  []models.InboundEvent
}

func NewInboundBuffer(capacity int) *InboundBuffer {
	if capacity <= 0 {
		capacity = InboundBufferCapacity
	}
	return &InboundBuffer{
		capacity: capacity,
		entries:  make([]models.InboundEvent, 0, capacity),
	}
}

// Accept stamps and prepends the event, evicting the oldest entry when the
// ring is full.
func (b *InboundBuffer) Accept(event models.AppEvent) models.InboundEvent {
	entry := models.InboundEvent{
		TS:    models.NowMillis(),
		Event: event,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) < b.capacity {
		b.entries = append(b.entries, models.InboundEvent{})
	}
	copy(b.entries[1:], b.entries)
	b.entries[0] = entry

	return entry
}

// Recent returns up to n buffered events, newest first.
func (b *InboundBuffer) Recent(n int) []models.InboundEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > len(b.entries) {
		n = len(b.entries)
	}
	out := make([]models.InboundEvent, n)
	copy(out, b.entries[:n])
	return out
}

func (b *InboundBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
