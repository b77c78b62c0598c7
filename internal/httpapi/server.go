// Package httpapi wires HTTP handlers to the underlying services. Handlers
// stay thin: decode, delegate, map sentinel errors to status codes.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"holidaze/internal/app/accounts"
	"holidaze/internal/app/bookings"
	"holidaze/internal/app/catalog"
	"holidaze/internal/holidazeapi"
	"holidaze/internal/search"
	"holidaze/internal/session"
)

// CatalogService captures the browse/search pipeline operations the handlers
// need.
type CatalogService interface {
	Search(ctx context.Context, sessionID string, c search.Criteria) catalog.Output
	Results(ctx context.Context, sessionID string, forceShowAll bool) catalog.Output
	ClearCriteria(sessionID string)
	Venue(ctx context.Context, id string) (*holidazeapi.Venue, error)
	Refresh(ctx context.Context) error
}

// AccountService captures account and profile workflows.
type AccountService interface {
	Login(ctx context.Context, email, password string) (*accounts.LoginResult, error)
	Register(ctx context.Context, name, email, password string, venueManager bool) (*holidazeapi.Profile, error)
	Profile(ctx context.Context, sess *session.Session, name string) (*holidazeapi.Profile, error)
	UpdateProfile(ctx context.Context, sess *session.Session, name string, update holidazeapi.ProfileUpdate) (*holidazeapi.Profile, error)
}

// BookingService captures reservation workflows.
type BookingService interface {
	Create(ctx context.Context, sess *session.Session, input holidazeapi.BookingInput) (*holidazeapi.Booking, error)
	My(ctx context.Context, sess *session.Session) (*bookings.History, error)
	ForVenue(ctx context.Context, sess *session.Session, venueID string) ([]holidazeapi.Booking, error)
}

// ManagerService captures venue-manager CRUD workflows.
type ManagerService interface {
	Mine(ctx context.Context, sess *session.Session) ([]holidazeapi.Venue, error)
	Create(ctx context.Context, sess *session.Session, input holidazeapi.VenueInput) (*holidazeapi.Venue, error)
	Update(ctx context.Context, sess *session.Session, id string, input holidazeapi.VenueInput) (*holidazeapi.Venue, error)
	Delete(ctx context.Context, sess *session.Session, id string) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	catalog  CatalogService
	accounts AccountService
	bookings BookingService
	manager  ManagerService
	sessions *session.Manager
}

// New configures a Server with the given service implementations.
func New(catalogSvc CatalogService, accountSvc AccountService, bookingSvc BookingService, managerSvc ManagerService, sessions *session.Manager) *Server {
	return &Server{
		catalog:  catalogSvc,
		accounts: accountSvc,
		bookings: bookingSvc,
		manager:  managerSvc,
		sessions: sessions,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Search pipeline
	mux.HandleFunc("GET /api/v1/search", s.handleSearch)
	mux.HandleFunc("GET /api/v1/search/results", s.handleSearchResults)
	mux.HandleFunc("DELETE /api/v1/search", s.handleClearSearch)

	// Venue browsing
	mux.HandleFunc("GET /api/v1/venues", s.handleListVenues)
	mux.HandleFunc("POST /api/v1/venues/refresh", s.handleRefreshVenues)
	mux.HandleFunc("GET /api/v1/venues/{id}", s.handleGetVenue)

	// Auth
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)

	// Profiles
	mux.HandleFunc("GET /api/v1/profiles/{name}", s.handleGetProfile)
	mux.HandleFunc("PUT /api/v1/profiles/{name}", s.handleUpdateProfile)

	// Bookings
	mux.HandleFunc("POST /api/v1/bookings", s.handleCreateBooking)
	mux.HandleFunc("GET /api/v1/me/bookings", s.handleMyBookings)
	mux.HandleFunc("GET /api/v1/venues/{id}/bookings", s.handleVenueBookings)

	// Venue management
	mux.HandleFunc("GET /api/v1/me/venues", s.handleMyVenues)
	mux.HandleFunc("POST /api/v1/venues", s.handleCreateVenue)
	mux.HandleFunc("PUT /api/v1/venues/{id}", s.handleUpdateVenue)
	mux.HandleFunc("DELETE /api/v1/venues/{id}", s.handleDeleteVenue)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

// sessionID identifies the browsing session that owns the criteria state.
// Anonymous visitors get a minted ID echoed back in the response header.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get("X-Session-ID")
	if id == "" {
		if token := parseBearerToken(r.Header.Get("Authorization")); token != "" {
			id = token
		} else {
			id = uuid.New().String()
		}
	}
	w.Header().Set("X-Session-ID", id)
	return id
}

// requireSession parses the bearer session token, writing a 401 when absent
// or invalid.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return nil, false
	}
	sess, err := s.sessions.Parse(token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired session"})
		return nil, false
	}
	return sess, true
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
