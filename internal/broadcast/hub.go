// Package broadcast fans each cycle's snapshot out to live-update
// consumers (the SSE route, primarily).
package broadcast

import (
	"sync"

	"github.com/Jainesh-shah/CourtTracker/internal/feed"
)

const subscriberBuffer = 4

// Hub is an in-process publish/subscribe channel for snapshots. Publish
// never blocks: a subscriber that cannot keep up misses snapshots rather
// than stalling the polling cycle.
type Hub struct {
	mu   sync.Mutex
	subs map[chan *feed.Snapshot]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan *feed.Snapshot]struct{})}
}

// Subscribe registers a consumer. The returned cancel function must be
// called when the consumer goes away.
func (h *Hub) Subscribe() (<-chan *feed.Snapshot, func()) {
	ch := make(chan *feed.Snapshot, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a snapshot to every subscriber, dropping it for any
// subscriber whose buffer is full.
func (h *Hub) Publish(snap *feed.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Subscribers returns the current consumer count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
