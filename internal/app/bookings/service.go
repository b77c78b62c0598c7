// Package bookings coordinates reservation workflows: creating bookings with
// a client-side availability pre-check and listing booking history.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"holidaze/internal/holidazeapi"
	"holidaze/internal/session"
)

var (
	// ErrInvalidRange indicates a missing or inverted date range.
	ErrInvalidRange = errors.New("booking dates are missing or inverted")
	// ErrDatesUnavailable indicates an overlap with an existing booking. The
	// remote service remains the final authority; this is a fast local check.
	ErrDatesUnavailable = errors.New("venue is already booked for the selected dates")
	// ErrTooManyGuests indicates the party exceeds the venue capacity.
	ErrTooManyGuests = errors.New("guest count exceeds venue capacity")
	// ErrForbidden indicates a manager query against a venue the caller does
	// not own.
	ErrForbidden = errors.New("forbidden")
)

// Remote is the slice of the remote API the bookings service needs.
type Remote interface {
	Venue(ctx context.Context, id string) (*holidazeapi.Venue, error)
	CreateBooking(ctx context.Context, auth holidazeapi.Auth, input holidazeapi.BookingInput) (*holidazeapi.Booking, error)
	ProfileBookings(ctx context.Context, auth holidazeapi.Auth, name string) ([]holidazeapi.Booking, error)
}

// History splits a profile's bookings around the current time.
type History struct {
	Upcoming []holidazeapi.Booking `json:"upcoming"`
	Past     []holidazeapi.Booking `json:"past"`
}

// Service coordinates booking operations.
type Service struct {
	remote Remote
	logger zerolog.Logger
	now    func() time.Time
}

// New constructs the bookings service.
func New(remote Remote, logger zerolog.Logger) *Service {
	return &Service{remote: remote, logger: logger, now: time.Now}
}

// Create reserves a venue after validating the range locally against the
// venue's known bookings. Intervals are half-open: checkout day is free.
func (s *Service) Create(ctx context.Context, sess *session.Session, input holidazeapi.BookingInput) (*holidazeapi.Booking, error) {
	if input.DateFrom.IsZero() || input.DateTo.IsZero() || !input.DateFrom.Before(input.DateTo) {
		return nil, ErrInvalidRange
	}
	if input.Guests < 1 {
		input.Guests = 1
	}

	venue, err := s.remote.Venue(ctx, input.VenueID)
	if err != nil {
		return nil, fmt.Errorf("look up venue: %w", err)
	}
	if input.Guests > venue.MaxGuests {
		return nil, ErrTooManyGuests
	}
	if venue.BookedBetween(input.DateFrom, input.DateTo) {
		return nil, ErrDatesUnavailable
	}

	booking, err := s.remote.CreateBooking(ctx, auth(sess), input)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("venue", input.VenueID).
		Time("from", input.DateFrom).
		Time("to", input.DateTo).
		Msg("booking created")
	return booking, nil
}

// My returns the caller's bookings split into upcoming and past, soonest
// departure first within each bucket.
func (s *Service) My(ctx context.Context, sess *session.Session) (*History, error) {
	bookings, err := s.remote.ProfileBookings(ctx, auth(sess), sess.Name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	history := &History{
		Upcoming: []holidazeapi.Booking{},
		Past:     []holidazeapi.Booking{},
	}
	for _, b := range bookings {
		if b.DateTo.After(now) {
			history.Upcoming = append(history.Upcoming, b)
		} else {
			history.Past = append(history.Past, b)
		}
	}
	sort.Slice(history.Upcoming, func(i, j int) bool {
		return history.Upcoming[i].DateFrom.Before(history.Upcoming[j].DateFrom)
	})
	sort.Slice(history.Past, func(i, j int) bool {
		return history.Past[i].DateFrom.After(history.Past[j].DateFrom)
	})
	return history, nil
}

// ForVenue lists the bookings on one of the caller's own venues, for the
// manager dashboard.
func (s *Service) ForVenue(ctx context.Context, sess *session.Session, venueID string) ([]holidazeapi.Booking, error) {
	venue, err := s.remote.Venue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if venue.Owner == nil || venue.Owner.Name != sess.Name {
		return nil, ErrForbidden
	}
	return venue.Bookings, nil
}

func auth(sess *session.Session) holidazeapi.Auth {
	return holidazeapi.Auth{AccessToken: sess.AccessToken, APIKey: sess.APIKey}
}
