package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"holidaze/internal/search"
)

// handleSearch replaces the session's criteria with the query parameters and
// returns the recomputed results.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	out := s.catalog.Search(r.Context(), s.sessionID(w, r), criteria)
	writeJSON(w, http.StatusOK, out)
}

// handleSearchResults recomputes results from the criteria as last set, e.g.
// when the results view remounts. showAll=true renders the full annotated
// list even without an active search.
func (s *Server) handleSearchResults(w http.ResponseWriter, r *http.Request) {
	showAll := r.URL.Query().Get("showAll") == "true"
	out := s.catalog.Results(r.Context(), s.sessionID(w, r), showAll)
	writeJSON(w, http.StatusOK, out)
}

// handleClearSearch resets the session's criteria, as on navigation to the
// home view.
func (s *Server) handleClearSearch(w http.ResponseWriter, r *http.Request) {
	s.catalog.ClearCriteria(s.sessionID(w, r))
	w.WriteHeader(http.StatusNoContent)
}

func parseCriteria(r *http.Request) (search.Criteria, error) {
	query := r.URL.Query()

	criteria := search.Criteria{
		Location: strings.TrimSpace(query.Get("location")),
		Guests:   1,
	}

	if raw := query.Get("guests"); raw != "" {
		guests, err := strconv.Atoi(raw)
		if err != nil || guests < 1 {
			return search.Criteria{}, fmt.Errorf("invalid guests parameter")
		}
		criteria.Guests = guests
	}

	var err error
	if criteria.DateFrom, err = parseDate(query.Get("dateFrom")); err != nil {
		return search.Criteria{}, fmt.Errorf("invalid dateFrom parameter")
	}
	if criteria.DateTo, err = parseDate(query.Get("dateTo")); err != nil {
		return search.Criteria{}, fmt.Errorf("invalid dateTo parameter")
	}

	return criteria, nil
}

// parseDate accepts date-only or RFC 3339 values; empty means unset.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
