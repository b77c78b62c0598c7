// Package catalog orchestrates the venue browsing pipeline: the one-shot
// paginated fetch into the session cache, per-session search criteria, and
// the filtering engine recompute.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"holidaze/internal/holidazeapi"
	"holidaze/internal/search"
	"holidaze/internal/venuestore"
)

// ErrVenueNotFound indicates the requested venue exists neither in the cache
// nor on the remote service.
var ErrVenueNotFound = errors.New("venue not found")

// VenueSource is the slice of the remote API the catalog needs.
type VenueSource interface {
	FetchAllVenues(ctx context.Context) ([]holidazeapi.Venue, error)
	Venue(ctx context.Context, id string) (*holidazeapi.Venue, error)
}

// Output is the data contract handed to presentation code. Error is nullable
// on the wire.
type Output struct {
	Results      []search.FilteredVenue `json:"results"`
	Error        *string                `json:"error"`
	SearchActive bool                   `json:"isSearchActive"`
	Ready        bool                   `json:"isReady"`
	Loading      bool                   `json:"loading"`
}

// Service coordinates the venue store, the filtering engine, and per-session
// criteria holders. It is the only writer of the store.
type Service struct {
	source VenueSource
	store  *venuestore.Store
	engine *search.Engine
	logger zerolog.Logger

	mu       sync.Mutex
	inFlight bool

	hmu     sync.Mutex
	holders map[string]*search.Holder
}

// New constructs the catalog service around an injectable store so tests can
// reset cache state between cases.
func New(source VenueSource, store *venuestore.Store, logger zerolog.Logger) *Service {
	return &Service{
		source:  source,
		store:   store,
		engine:  search.NewEngine(),
		logger:  logger,
		holders: make(map[string]*search.Holder),
	}
}

// EnsureVenues fills the store if it is empty. Repeated calls while a fetch
// is in flight, or after the store is populated, return immediately: the
// cache-once policy trades staleness for fewer remote requests.
//
// On failure the store keeps its previous contents and the loading flag
// clears. Caller cancellation surfaces as ctx.Err() and is not treated as a
// fetch failure.
func (s *Service) EnsureVenues(ctx context.Context) error {
	s.mu.Lock()
	if s.store.Populated() || s.inFlight {
		s.mu.Unlock()
		return nil
	}
	s.inFlight = true
	s.store.SetLoading(true)
	s.mu.Unlock()

	venues, err := s.source.FetchAllVenues(ctx)

	s.mu.Lock()
	s.inFlight = false
	s.store.SetLoading(false)
	if err == nil {
		s.store.SetVenues(venues)
		s.engine.SetVenues(venues)
	}
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.logger.Debug().Msg("venue fetch cancelled before completion")
			return err
		}
		s.logger.Error().Err(err).Msg("venue fetch failed; keeping previous cache contents")
		return fmt.Errorf("fetch venues: %w", err)
	}

	s.logger.Info().Int("venues", len(venues)).Msg("venue cache populated")
	return nil
}

// Refresh discards the cache and fetches anew, for navigation into a fresh
// search context.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.store.Clear()
	s.engine.SetVenues(nil)
	s.mu.Unlock()
	return s.EnsureVenues(ctx)
}

// holder returns the criteria holder for a session, creating it on first use.
// Only Search materializes holders; read paths must use currentCriteria so
// anonymous traffic with throwaway session IDs cannot grow the map.
func (s *Service) holder(sessionID string) *search.Holder {
	s.hmu.Lock()
	defer s.hmu.Unlock()
	h, ok := s.holders[sessionID]
	if !ok {
		h = search.NewHolder()
		s.holders[sessionID] = h
	}
	return h
}

// currentCriteria reads a session's criteria without materializing a holder.
// Sessions that never submitted a search read the zero value.
func (s *Service) currentCriteria(sessionID string) search.Criteria {
	s.hmu.Lock()
	h, ok := s.holders[sessionID]
	s.hmu.Unlock()
	if !ok {
		return search.Criteria{}
	}
	return h.Current()
}

// Search replaces the session's criteria wholesale and recomputes the
// filtered results. A failed or cancelled fetch degrades to empty,
// not-ready output rather than an error.
func (s *Service) Search(ctx context.Context, sessionID string, c search.Criteria) Output {
	_ = s.EnsureVenues(ctx)
	stamped := s.holder(sessionID).Set(c)
	return s.output(stamped, search.Options{})
}

// Results recomputes the filtered results from the criteria as last set.
func (s *Service) Results(ctx context.Context, sessionID string, forceShowAll bool) Output {
	_ = s.EnsureVenues(ctx)
	return s.output(s.currentCriteria(sessionID), search.Options{ForceShowAll: forceShowAll})
}

// ClearCriteria drops the session's criteria state entirely, as on navigation
// to the home view. The holder is evicted, not just reset, so cleared
// sessions cost nothing to keep around.
func (s *Service) ClearCriteria(sessionID string) {
	s.hmu.Lock()
	delete(s.holders, sessionID)
	s.hmu.Unlock()
}

// Criteria returns the session's criteria as last set.
func (s *Service) Criteria(sessionID string) search.Criteria {
	return s.currentCriteria(sessionID)
}

func (s *Service) output(c search.Criteria, opts search.Options) Output {
	loading := s.store.Loading()

	// An unpopulated store is an empty result, not a malformed one; the
	// failure already surfaced through the loading flag.
	if !s.store.Populated() {
		return Output{
			Results:      []search.FilteredVenue{},
			SearchActive: c.Active(),
			Loading:      loading,
		}
	}

	res := s.engine.Filter(c, opts)
	out := Output{
		Results:      res.Results,
		SearchActive: res.SearchActive,
		Ready:        !loading && len(s.store.Venues()) > 0,
		Loading:      loading,
	}
	if res.Err != "" {
		out.Error = &res.Err
	}
	return out
}

// Venue serves a single venue from the cache when possible, falling back to
// the remote service.
func (s *Service) Venue(ctx context.Context, id string) (*holidazeapi.Venue, error) {
	for _, v := range s.store.Venues() {
		if v.ID == id {
			venue := v
			return &venue, nil
		}
	}

	venue, err := s.source.Venue(ctx, id)
	if err != nil {
		var apiErr *holidazeapi.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 404 {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}
