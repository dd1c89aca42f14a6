package reactive

import "sync"

// Events is a one-shot event stream. Emitted values reach every subscriber
// active at emit time exactly once and are never replayed to late
// subscribers, which keeps navigation signals out of re-subscribable state.
type Events[E any] struct {
	mu   sync.Mutex
	subs map[int]chan E
	next int
}

// NewEvents creates an empty event stream.
func NewEvents[E any]() *Events[E] {
	return &Events[E]{subs: make(map[int]chan E)}
}

// Emit delivers the event to all current subscribers. Events for a
// subscriber whose buffer is full are dropped rather than blocking the
// emitter, trading exactly-once delivery for a controller that can never
// stall on a dead consumer. Subscribers that drain promptly see every
// event; the buffer holds far more than a UI ever leaves pending.
func (e *Events[E]) Emit(event E) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe registers an observer for future events only. The returned
// cancel function must be called when the observer goes away.
func (e *Events[E]) Subscribe() (<-chan E, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.next
	e.next++
	ch := make(chan E, subscriberBuffer)
	e.subs[id] = ch

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}
