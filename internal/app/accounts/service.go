// Package accounts handles login, registration, and profile management
// against the remote service, exchanging remote credentials for local
// session tokens.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"holidaze/internal/holidazeapi"
	"holidaze/internal/session"
)

var (
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidInput indicates a malformed signup or update payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden indicates an attempt to act on another user's profile.
	ErrForbidden = errors.New("forbidden")
)

// Remote is the slice of the remote API the accounts service needs.
type Remote interface {
	Login(ctx context.Context, email, password string) (*holidazeapi.Account, error)
	Register(ctx context.Context, name, email, password string, venueManager bool) (*holidazeapi.Profile, error)
	CreateAPIKey(ctx context.Context, accessToken string) (string, error)
	Profile(ctx context.Context, auth holidazeapi.Auth, name string) (*holidazeapi.Profile, error)
	UpdateProfile(ctx context.Context, auth holidazeapi.Auth, name string, update holidazeapi.ProfileUpdate) (*holidazeapi.Profile, error)
}

// LoginResult is what the browser gets back after a successful login.
type LoginResult struct {
	Token        string             `json:"token"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	VenueManager bool               `json:"venueManager"`
	Avatar       *holidazeapi.Media `json:"avatar,omitempty"`
}

// Service coordinates account workflows.
type Service struct {
	remote   Remote
	sessions *session.Manager
	logger   zerolog.Logger
}

// New constructs the accounts service.
func New(remote Remote, sessions *session.Manager, logger zerolog.Logger) *Service {
	return &Service{remote: remote, sessions: sessions, logger: logger}
}

// Login authenticates against the remote service, mints a fresh API key, and
// wraps both credentials in a session token. A new key is requested on every
// login rather than reused.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	account, err := s.remote.Login(ctx, email, password)
	if err != nil {
		var apiErr *holidazeapi.APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusBadRequest) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("remote login: %w", err)
	}

	apiKey, err := s.remote.CreateAPIKey(ctx, account.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("create api key: %w", err)
	}

	token, err := s.sessions.Issue(session.Session{
		Name:         account.Name,
		Email:        account.Email,
		VenueManager: account.VenueManager,
		AccessToken:  account.AccessToken,
		APIKey:       apiKey,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("name", account.Name).Bool("venueManager", account.VenueManager).Msg("user logged in")

	return &LoginResult{
		Token:        token,
		Name:         account.Name,
		Email:        account.Email,
		VenueManager: account.VenueManager,
		Avatar:       account.Avatar,
	}, nil
}

// Register creates a remote account. The remote service enforces its own
// email domain and password policy; only emptiness is rejected locally.
func (s *Service) Register(ctx context.Context, name, email, password string, venueManager bool) (*holidazeapi.Profile, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	profile, err := s.remote.Register(ctx, name, email, password, venueManager)
	if err != nil {
		var apiErr *holidazeapi.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, apiErr.Message)
		}
		return nil, fmt.Errorf("remote register: %w", err)
	}
	return profile, nil
}

// Profile retrieves a profile with venues and bookings expanded.
func (s *Service) Profile(ctx context.Context, sess *session.Session, name string) (*holidazeapi.Profile, error) {
	return s.remote.Profile(ctx, auth(sess), name)
}

// UpdateProfile applies a partial update to the caller's own profile. Bio,
// avatar, banner, and the venue-manager upgrade all travel through here.
func (s *Service) UpdateProfile(ctx context.Context, sess *session.Session, name string, update holidazeapi.ProfileUpdate) (*holidazeapi.Profile, error) {
	if !strings.EqualFold(name, sess.Name) {
		return nil, ErrForbidden
	}
	return s.remote.UpdateProfile(ctx, auth(sess), name, update)
}

func auth(sess *session.Session) holidazeapi.Auth {
	return holidazeapi.Auth{AccessToken: sess.AccessToken, APIKey: sess.APIKey}
}
