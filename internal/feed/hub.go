package feed

import "sync"

// Hub fans one value stream out to any number of subscribers. Each
// subscriber owns a capacity-1 latest-wins channel: a slow consumer may
// skip intermediate values but always converges on the newest, and
// publishing never blocks. New subscribers receive the last published
// value before any incremental update.
type Hub[T any] struct {
	mu      sync.Mutex
	subs    map[int]chan T
	nextID  int
	last    T
	hasLast bool
}

// NewHub creates an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[int]chan T)}
}

// Subscribe registers a consumer. The returned channel carries the
// current value first, then updates; it is closed by the cancel func.
// Cancel is idempotent, and no value is delivered after it returns.
func (h *Hub[T]) Subscribe() (<-chan T, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan T, 1)
	if h.hasLast {
		ch <- h.last
	}
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers v to every subscriber, displacing any undelivered
// older value.
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = v
	h.hasLast = true

	for _, ch := range h.subs {
		select {
		case ch <- v:
		default:
			// Drop the stale value, then retry; the consumer may have
			// drained in between, so tolerate a second refusal.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

// Last returns the most recently published value, if any.
func (h *Hub[T]) Last() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.hasLast
}

// Len reports the current subscriber count.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
