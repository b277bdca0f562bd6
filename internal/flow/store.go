package flow

import (
	"context"
	"sync"
)

// Store is a single-writer container for an immutable state value.
type Store[S any] struct {
	mu    sync.Mutex
	state S
	subs  map[*mailbox[S]]struct{}
}

func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{state: initial, subs: map[*mailbox[S]]struct{}{}}
}

// State returns the current snapshot.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update replaces the state with fn(current) and publishes the result.
// Concurrent calls are serialized. fn must not block or call back into s.
func (s *Store[S]) Update(fn func(S) S) S {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	for m := range s.subs {
		m.push(s.state)
	}
	return s.state
}

// Set is Update with a constant transform.
func (s *Store[S]) Set(v S) {
	s.Update(func(S) S { return v })
}

// Subscribe yields the current state followed by every later update, in
// order, until ctx is done. The returned channel is closed afterwards.
func (s *Store[S]) Subscribe(ctx context.Context) <-chan S {
	m := newMailbox[S]()
	out := make(chan S)

	s.mu.Lock()
	m.push(s.state)
	s.subs[m] = struct{}{}
	s.mu.Unlock()

	go func() {
		defer close(out)
		defer s.unsubscribe(m)
		for {
			v, ok := m.next(ctx)
			if !ok {
				return
			}
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Subscribers reports the number of attached subscriptions.
func (s *Store[S]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Store[S]) unsubscribe(m *mailbox[S]) {
	s.mu.Lock()
	delete(s.subs, m)
	s.mu.Unlock()
}

// mailbox is an unbounded FIFO with a wake-up signal for one reader.
type mailbox[T any] struct {
	mu    sync.Mutex
	queue []T
	ready chan struct{}
}

func newMailbox[T any]() *mailbox[T] {
	return &mailbox[T]{ready: make(chan struct{}, 1)}
}

func (m *mailbox[T]) push(v T) {
	m.mu.Lock()
	m.queue = append(m.queue, v)
	m.mu.Unlock()
	select {
	case m.ready <- struct{}{}:
	default:
	}
}

func (m *mailbox[T]) next(ctx context.Context) (T, bool) {
	var zero T
	for {
		m.mu.Lock()
		if len(m.queue) > 0 {
			v := m.queue[0]
			m.queue[0] = zero
			m.queue = m.queue[1:]
			m.mu.Unlock()
			return v, true
		}
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			return zero, false
		case <-m.ready:
		}
	}
}
