package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"holidaze/internal/app/catalog"
	"holidaze/internal/app/venues"
	"holidaze/internal/holidazeapi"
)

// handleListVenues serves the home view: the full annotated venue list
// regardless of search state.
func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	out := s.catalog.Results(r.Context(), s.sessionID(w, r), true)
	writeJSON(w, http.StatusOK, out)
}

// handleRefreshVenues clears the session cache and re-fetches, for a fresh
// search context.
func (s *Server) handleRefreshVenues(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Refresh(r.Context()); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "could not refresh venues"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	venue, err := s.catalog.Venue(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrVenueNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "venue not found"})
			return
		}
		writeJSON(w, remoteStatus(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

func (s *Server) handleMyVenues(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	mine, err := s.manager.Mine(r.Context(), sess)
	if err != nil {
		writeJSON(w, remoteStatus(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Venues []holidazeapi.Venue `json:"venues"`
	}{Venues: mine})
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	var input holidazeapi.VenueInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	venue, err := s.manager.Create(r.Context(), sess, input)
	if err != nil {
		writeJSON(w, managerStatus(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, venue)
}

func (s *Server) handleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	var input holidazeapi.VenueInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	venue, err := s.manager.Update(r.Context(), sess, r.PathValue("id"), input)
	if err != nil {
		writeJSON(w, managerStatus(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	if err := s.manager.Delete(r.Context(), sess, r.PathValue("id")); err != nil {
		writeJSON(w, managerStatus(err), errorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func managerStatus(err error) int {
	switch {
	case errors.Is(err, venues.ErrNotManager), errors.Is(err, venues.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, venues.ErrInvalidVenue):
		return http.StatusBadRequest
	default:
		return remoteStatus(err)
	}
}

// remoteStatus maps remote API failures onto our response: remote 4xx pass
// through, everything else is a bad gateway.
func remoteStatus(err error) int {
	var apiErr *holidazeapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
	}
	return http.StatusBadGateway
}
