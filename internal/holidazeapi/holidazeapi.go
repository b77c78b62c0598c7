package holidazeapi

import (
	"context"
	"time"
)

// API defines the operations the application needs from the remote Holidaze
// service. All persistence, authentication, and booking-conflict enforcement
// live behind this boundary.
type API interface {
	// FetchAllVenues retrieves the complete venue collection, walking the
	// server-side pagination until the last page. The accumulated list
	// preserves server ordering (creation time descending).
	FetchAllVenues(ctx context.Context) ([]Venue, error)

	// SearchVenues queries the remote full-text search endpoint. Kept as an
	// alternate data source; the client-side engine is authoritative.
	SearchVenues(ctx context.Context, query string) ([]Venue, error)

	// Venue retrieves a single venue with owner and bookings expanded.
	Venue(ctx context.Context, id string) (*Venue, error)

	CreateVenue(ctx context.Context, auth Auth, input VenueInput) (*Venue, error)
	UpdateVenue(ctx context.Context, auth Auth, id string, input VenueInput) (*Venue, error)
	DeleteVenue(ctx context.Context, auth Auth, id string) error

	// Login authenticates against the remote service and returns the account
	// with its access token.
	Login(ctx context.Context, email, password string) (*Account, error)
	Register(ctx context.Context, name, email, password string, venueManager bool) (*Profile, error)
	// CreateAPIKey mints the per-client API key required alongside the access
	// token on all authenticated Holidaze endpoints.
	CreateAPIKey(ctx context.Context, accessToken string) (string, error)

	Profile(ctx context.Context, auth Auth, name string) (*Profile, error)
	UpdateProfile(ctx context.Context, auth Auth, name string, update ProfileUpdate) (*Profile, error)
	ProfileVenues(ctx context.Context, auth Auth, name string) ([]Venue, error)
	ProfileBookings(ctx context.Context, auth Auth, name string) ([]Booking, error)

	CreateBooking(ctx context.Context, auth Auth, input BookingInput) (*Booking, error)
}

// Config holds client construction settings.
type Config struct {
	// BaseURL is the remote API root, e.g. https://v2.api.noroff.dev.
	BaseURL string

	// PageSize bounds each page request during FetchAllVenues. Defaults to 100.
	PageSize int

	// RequestTimeout applies per HTTP request. Defaults to 30s.
	RequestTimeout time.Duration
}
