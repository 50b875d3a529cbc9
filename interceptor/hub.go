package interceptor

import (
	"sync"
	"time"
)

// Unauthenticated is published whenever any call comes back 401. The stored
// session has already been cleared by the time subscribers see it.
type Unauthenticated struct {
	Method string
	URL    string
	At     time.Time
}

type subscriber struct {
	id int
	fn func(Unauthenticated)
}

// Hub fans Unauthenticated events out to subscribers. Detecting the failure
// lives here; reacting to it (navigation, UI) belongs to subscribers.
type Hub struct {
	mu     sync.RWMutex
	subs   []subscriber
	nextID int
}

func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers fn and returns a func that removes it.
func (h *Hub) Subscribe(fn func(Unauthenticated)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.subs = append(h.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.subs[:0]
	for _, s := range h.subs {
		if s.id != id {
			kept = append(kept, s)
		}
	}
	h.subs = kept
}

// Publish calls every subscriber synchronously, in subscription order.
func (h *Hub) Publish(event Unauthenticated) {
	h.mu.RLock()
	subs := make([]subscriber, len(h.subs))
	copy(subs, h.subs)
	h.mu.RUnlock()

	for _, s := range subs {
		s.fn(event)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
