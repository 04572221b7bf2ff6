// Package console holds the admin console state machines: sessions,
// the article form controller, the generic list/delete coordinator,
// and the fetch bookkeeping that keeps slow responses from clobbering
// fresh state.
package console

import "sync"

// Store holds one entity collection together with a fetch sequence
// guard. Every fetch takes a ticket before issuing its request and
// presents it when applying the result; a result whose ticket has been
// superseded is discarded, so a slow stale response can never overwrite
// fresher state. Each Apply is atomic with respect to readers.
type Store[T any] struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
	items   []T
}

// Begin allocates a ticket for a new fetch.
func (s *Store[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued++
	return s.issued
}

// Apply installs a fetch result. It reports false, leaving the held
// collection untouched, when a later fetch has already been applied.
func (s *Store[T]) Apply(ticket uint64, items []T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket <= s.applied {
		return false
	}
	s.applied = ticket
	s.items = make([]T, len(items))
	copy(s.items, items)
	return true
}

// Items returns the currently held collection.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
