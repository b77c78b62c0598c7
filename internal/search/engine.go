// Package search implements the client-side venue search pipeline: criteria
// state, a fuzzy-match index over name/city/country, and the filtering
// engine that annotates venues with guest-capacity and availability hints.
package search

import (
	"fmt"
	"strings"
	"sync"

	"holidaze/internal/holidazeapi"
)

const errInvalidVenues = "invalid input: venue list is not initialized"

// Options adjusts a single Filter call.
type Options struct {
	// ForceShowAll returns the full annotated venue list even when no search
	// is active (the home view shows everything; the search page shows
	// nothing until a search is submitted).
	ForceShowAll bool
}

// FilteredVenue is a venue enriched with derived presentation hints. Venues
// are never dropped for being booked or too small; the flags let the view
// decide how to render them.
type FilteredVenue struct {
	holidazeapi.Venue
	IsBookedForSelectedDates bool `json:"isBookedForSelectedDates"`
	TooSmallForGuests        bool `json:"tooSmallForGuests"`
}

// Result is the engine's output contract. Err is a descriptive string rather
// than an error value because it travels to the presentation layer verbatim.
type Result struct {
	Results      []FilteredVenue `json:"results"`
	Err          string          `json:"error,omitempty"`
	SearchActive bool            `json:"isSearchActive"`
}

// Engine caches the venue list and its fuzzy index so the index is rebuilt
// only when the list changes, not on every query. Safe for concurrent use.
type Engine struct {
	mu     sync.RWMutex
	venues []holidazeapi.Venue
	index  *Index
}

// NewEngine returns an engine with no venues. Filtering before SetVenues
// reports the malformed-input error, matching an uninitialized cache.
func NewEngine() *Engine {
	return &Engine{}
}

// SetVenues replaces the venue list and rebuilds the index.
func (e *Engine) SetVenues(venues []holidazeapi.Venue) {
	var ix *Index
	if venues != nil {
		ix = NewIndex(venues)
	}
	e.mu.Lock()
	e.venues = venues
	e.index = ix
	e.mu.Unlock()
}

// Filter derives the display subset for the current criteria.
func (e *Engine) Filter(c Criteria, opts Options) Result {
	e.mu.RLock()
	venues, ix := e.venues, e.index
	e.mu.RUnlock()
	return filter(venues, ix, c, opts)
}

// Filter runs the engine once over an explicit venue list, building a
// transient index. Convenience for callers without a long-lived Engine.
func Filter(venues []holidazeapi.Venue, c Criteria, opts Options) Result {
	var ix *Index
	if venues != nil {
		ix = NewIndex(venues)
	}
	return filter(venues, ix, c, opts)
}

func filter(venues []holidazeapi.Venue, ix *Index, c Criteria, opts Options) (res Result) {
	// The engine must never panic out into the presentation layer; convert
	// anything unexpected into the error string contract.
	defer func() {
		if r := recover(); r != nil {
			res = Result{
				Results:      []FilteredVenue{},
				Err:          fmt.Sprintf("search failed: %v", r),
				SearchActive: res.SearchActive,
			}
		}
	}()

	res.SearchActive = c.Active()
	res.Results = []FilteredVenue{}

	if venues == nil {
		res.Err = errInvalidVenues
		return res
	}

	if !res.SearchActive && !opts.ForceShowAll {
		return res
	}

	candidates := venues
	if loc := strings.TrimSpace(c.Location); loc != "" && ix != nil {
		matches := ix.Search(loc)
		candidates = make([]holidazeapi.Venue, 0, len(matches))
		for _, m := range matches {
			candidates = append(candidates, venues[m.Venue])
		}
	}

	guests := c.Guests
	if guests < 1 {
		guests = 1
	}

	res.Results = make([]FilteredVenue, 0, len(candidates))
	for _, v := range candidates {
		fv := FilteredVenue{
			Venue:             v,
			TooSmallForGuests: v.MaxGuests < guests,
		}
		if c.HasDates() {
			fv.IsBookedForSelectedDates = v.BookedBetween(c.DateFrom, c.DateTo)
		}
		res.Results = append(res.Results, fv)
	}
	return res
}
