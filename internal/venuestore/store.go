// Package venuestore holds the session-wide venue cache: one fully-paginated
// copy of the remote collection, shared by every consumer until explicitly
// cleared. It trades staleness for fewer remote requests.
package venuestore

import (
	"sync"

	"holidaze/internal/holidazeapi"
)

// Store is the single shared mutable resource of the pipeline. It is written
// by the fetch-orchestration path only and read by the filtering engine and
// the HTTP layer. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	venues    []holidazeapi.Venue
	populated bool
	loading   bool
}

// New returns an empty store. Stores are injectable so tests can reset state
// between cases instead of sharing module globals.
func New() *Store {
	return &Store{}
}

// SetVenues replaces the held collection atomically. Readers never observe a
// partially-updated list.
func (s *Store) SetVenues(venues []holidazeapi.Venue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venues = venues
	s.populated = true
}

// Venues returns a snapshot of the held collection. The backing array is
// shared; callers must not mutate elements.
func (s *Store) Venues() []holidazeapi.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.venues
}

// Populated reports whether a fetch has completed since the last Clear.
func (s *Store) Populated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.populated
}

// SetLoading toggles the coarse loading indicator.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Clear discards the cached collection, forcing the next EnsureVenues to
// re-fetch. Used when navigating to a fresh search context.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venues = nil
	s.populated = false
	s.loading = false
}
