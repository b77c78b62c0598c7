package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"holidaze/internal/app/bookings"
	"holidaze/internal/holidazeapi"
)

type bookingRequest struct {
	VenueID  string `json:"venueId"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Guests   int    `json:"guests"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	dateFrom, errFrom := parseDate(req.DateFrom)
	dateTo, errTo := parseDate(req.DateTo)
	if errFrom != nil || errTo != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking dates"})
		return
	}

	booking, err := s.bookings.Create(r.Context(), sess, holidazeapi.BookingInput{
		VenueID:  req.VenueID,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Guests:   req.Guests,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, bookings.ErrInvalidRange), errors.Is(err, bookings.ErrTooManyGuests):
			status = http.StatusBadRequest
		case errors.Is(err, bookings.ErrDatesUnavailable):
			status = http.StatusConflict
		default:
			status = remoteStatus(err)
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	history, err := s.bookings.My(r.Context(), sess)
	if err != nil {
		writeJSON(w, remoteStatus(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleVenueBookings(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	list, err := s.bookings.ForVenue(r.Context(), sess, r.PathValue("id"))
	if err != nil {
		status := remoteStatus(err)
		if errors.Is(err, bookings.ErrForbidden) {
			status = http.StatusForbidden
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Bookings []holidazeapi.Booking `json:"bookings"`
	}{Bookings: list})
}
