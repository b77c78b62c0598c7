package search

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Criteria is the user-submitted search state: free-text location, guest
// count, and an optional date range. The zero value means "no search".
type Criteria struct {
	Location string    `json:"location"`
	Guests   int       `json:"guests"`
	DateFrom time.Time `json:"dateFrom,omitzero"`
	DateTo   time.Time `json:"dateTo,omitzero"`

	// Nonce increases on every Holder.Set so that resubmitting identical
	// criteria still reads as a change downstream.
	Nonce uint64 `json:"-"`
}

// Active reports whether any filter dimension is engaged.
func (c Criteria) Active() bool {
	return strings.TrimSpace(c.Location) != "" || c.Guests > 1 || c.HasDates()
}

// HasDates reports whether both ends of the date range are set. An inverted
// range still counts as set; overlap tests treat it as empty.
func (c Criteria) HasDates() bool {
	return !c.DateFrom.IsZero() && !c.DateTo.IsZero()
}

// Holder keeps the current criteria for one browsing session, shared between
// the search handler, results view, and booking widgets. Safe for concurrent
// use.
type Holder struct {
	mu      sync.RWMutex
	current Criteria
	nonce   atomic.Uint64
}

// NewHolder returns a Holder with empty criteria.
func NewHolder() *Holder {
	return &Holder{}
}

// Set replaces the current criteria wholesale (never merged) and stamps a
// fresh nonce.
func (h *Holder) Set(c Criteria) Criteria {
	c.Nonce = h.nonce.Add(1)
	h.mu.Lock()
	h.current = c
	h.mu.Unlock()
	return c
}

// Clear resets the criteria to the zero value, as on navigation back to the
// home view.
func (h *Holder) Clear() {
	h.mu.Lock()
	h.current = Criteria{}
	h.mu.Unlock()
}

// Current returns the criteria as last set. Consumers must replace, not
// mutate.
func (h *Holder) Current() Criteria {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}
