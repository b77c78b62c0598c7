// Package venues covers the venue-manager workflows: creating, updating, and
// removing owned venues on the remote service.
package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"holidaze/internal/holidazeapi"
	"holidaze/internal/session"
)

var (
	// ErrNotManager indicates the account has not opted into venue management.
	ErrNotManager = errors.New("account is not a venue manager")
	// ErrInvalidVenue indicates a malformed venue payload.
	ErrInvalidVenue = errors.New("invalid venue")
	// ErrForbidden indicates an attempt to modify a venue owned by someone else.
	ErrForbidden = errors.New("forbidden")
)

// Remote is the slice of the remote API the manager workflows need.
type Remote interface {
	Venue(ctx context.Context, id string) (*holidazeapi.Venue, error)
	CreateVenue(ctx context.Context, auth holidazeapi.Auth, input holidazeapi.VenueInput) (*holidazeapi.Venue, error)
	UpdateVenue(ctx context.Context, auth holidazeapi.Auth, id string, input holidazeapi.VenueInput) (*holidazeapi.Venue, error)
	DeleteVenue(ctx context.Context, auth holidazeapi.Auth, id string) error
	ProfileVenues(ctx context.Context, auth holidazeapi.Auth, name string) ([]holidazeapi.Venue, error)
}

// Service coordinates manager venue operations.
type Service struct {
	remote Remote
	logger zerolog.Logger
}

// New constructs the manager venue service.
func New(remote Remote, logger zerolog.Logger) *Service {
	return &Service{remote: remote, logger: logger}
}

// Mine lists the caller's venues with bookings expanded.
func (s *Service) Mine(ctx context.Context, sess *session.Session) ([]holidazeapi.Venue, error) {
	return s.remote.ProfileVenues(ctx, auth(sess), sess.Name)
}

// Create registers a new venue owned by the caller.
func (s *Service) Create(ctx context.Context, sess *session.Session, input holidazeapi.VenueInput) (*holidazeapi.Venue, error) {
	if !sess.VenueManager {
		return nil, ErrNotManager
	}
	if err := validate(input); err != nil {
		return nil, err
	}

	venue, err := s.remote.CreateVenue(ctx, auth(sess), input)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("venue", venue.ID).Str("owner", sess.Name).Msg("venue created")
	return venue, nil
}

// Update replaces a venue the caller owns.
func (s *Service) Update(ctx context.Context, sess *session.Session, id string, input holidazeapi.VenueInput) (*holidazeapi.Venue, error) {
	if !sess.VenueManager {
		return nil, ErrNotManager
	}
	if err := validate(input); err != nil {
		return nil, err
	}
	if err := s.assertOwned(ctx, sess, id); err != nil {
		return nil, err
	}
	return s.remote.UpdateVenue(ctx, auth(sess), id, input)
}

// Delete removes a venue the caller owns.
func (s *Service) Delete(ctx context.Context, sess *session.Session, id string) error {
	if !sess.VenueManager {
		return ErrNotManager
	}
	if err := s.assertOwned(ctx, sess, id); err != nil {
		return err
	}
	if err := s.remote.DeleteVenue(ctx, auth(sess), id); err != nil {
		return err
	}
	s.logger.Info().Str("venue", id).Str("owner", sess.Name).Msg("venue deleted")
	return nil
}

func (s *Service) assertOwned(ctx context.Context, sess *session.Session, id string) error {
	venue, err := s.remote.Venue(ctx, id)
	if err != nil {
		return fmt.Errorf("look up venue: %w", err)
	}
	if venue.Owner == nil || venue.Owner.Name != sess.Name {
		return ErrForbidden
	}
	return nil
}

func validate(input holidazeapi.VenueInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidVenue)
	}
	if input.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidVenue)
	}
	if input.MaxGuests < 1 {
		return fmt.Errorf("%w: maxGuests must be at least 1", ErrInvalidVenue)
	}
	return nil
}

func auth(sess *session.Session) holidazeapi.Auth {
	return holidazeapi.Auth{AccessToken: sess.AccessToken, APIKey: sess.APIKey}
}
