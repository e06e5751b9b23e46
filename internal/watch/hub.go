package watch

import (
	"sync"

	"github.com/taehan09/studio/internal/storage"
)

// subscriberBuffer is the per-subscriber channel depth. A subscriber that
// falls this far behind misses intermediate versions but the write is never
// blocked.
const subscriberBuffer = 16

// Hub fans content changes out to path subscribers. Changes carry the
// changelog sequence; the hub drops anything at or below the last sequence
// already delivered for a path, so a change published by both the local write
// path and the poller is delivered exactly once.
type Hub struct {
	mu      sync.Mutex
	nextID  int
	subs    map[string]map[int]chan storage.Change
	lastSeq map[string]int64
}

func NewHub() *Hub {
	return &Hub{
		subs:    make(map[string]map[int]chan storage.Change),
		lastSeq: make(map[string]int64),
	}
}

// Subscribe registers a listener for changes to path. The returned cancel
// function detaches the listener and closes the channel; callers must invoke
// it on teardown.
func (h *Hub) Subscribe(path string) (<-chan storage.Change, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan storage.Change, subscriberBuffer)

	if h.subs[path] == nil {
		h.subs[path] = make(map[int]chan storage.Change)
	}
	h.subs[path][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[path][id]; ok {
			delete(h.subs[path], id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers a change to all subscribers of its path. Stale sequences
// are dropped. Delivery never blocks; a full subscriber channel loses this
// version and catches up on the next one.
func (h *Hub) Publish(c storage.Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.Seq <= h.lastSeq[c.Path] {
		return
	}
	h.lastSeq[c.Path] = c.Seq

	for _, ch := range h.subs[c.Path] {
		select {
		case ch <- c:
		default:
		}
	}
}

// LastSeq returns the highest sequence published for a path, 0 if none.
func (h *Hub) LastSeq(path string) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastSeq[path]
}

// Subscribers returns the number of active subscribers for a path.
func (h *Hub) Subscribers(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[path])
}
