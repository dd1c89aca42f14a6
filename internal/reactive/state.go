// Package reactive provides the two primitives the controllers are built on:
// an observable state holder and a one-shot event stream. State carries the
// current snapshot and replays it to nobody; Events deliver to active
// subscribers only and are never replayed.
package reactive

import "sync"

const subscriberBuffer = 16

// State holds a current value and notifies subscribers on every change.
type State[T any] struct {
	mu    sync.RWMutex
	value T
	subs  map[int]chan T
	next  int
}

// NewState creates a State holding the initial value.
func NewState[T any](initial T) *State[T] {
	return &State[T]{
		value: initial,
		subs:  make(map[int]chan T),
	}
}

// Get returns the current snapshot.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the current value and notifies subscribers.
func (s *State[T]) Set(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.broadcast(value)
}

// Update applies f to the current value under the lock and publishes the
// result. The read-modify-write is atomic with respect to other Updates,
// so f may also be used as a test-and-set guard.
func (s *State[T]) Update(f func(T) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = f(s.value)
	s.broadcast(s.value)
	return s.value
}

// Subscribe registers an observer for future changes. The returned cancel
// function must be called when the observer goes away.
func (s *State[T]) Subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	ch := make(chan T, subscriberBuffer)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// broadcast pushes the value to every subscriber without blocking. A slow
// subscriber loses its oldest pending value: observers need the latest
// snapshot, not the full history.
func (s *State[T]) broadcast(value T) {
	for _, ch := range s.subs {
		select {
		case ch <- value:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- value:
			default:
			}
		}
	}
}
