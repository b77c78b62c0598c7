package holidazeapi

import "time"

// Media is an image reference with alt text.
type Media struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Location holds the free-text geography of a venue. Every field is optional
// on the remote side.
type Location struct {
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	Zip       string  `json:"zip,omitempty"`
	Country   string  `json:"country,omitempty"`
	Continent string  `json:"continent,omitempty"`
	Lat       float64 `json:"lat,omitempty"`
	Lng       float64 `json:"lng,omitempty"`
}

// Amenities is the fixed set of boolean venue flags.
type Amenities struct {
	Wifi      bool `json:"wifi"`
	Parking   bool `json:"parking"`
	Breakfast bool `json:"breakfast"`
	Pets      bool `json:"pets"`
}

// Booking is an existing reservation interval on a venue. Intervals are
// half-open: [DateFrom, DateTo).
type Booking struct {
	ID       string    `json:"id,omitempty"`
	DateFrom time.Time `json:"dateFrom"`
	DateTo   time.Time `json:"dateTo"`
	Guests   int       `json:"guests"`
	Created  time.Time `json:"created,omitempty"`
	Updated  time.Time `json:"updated,omitempty"`
	Venue    *Venue    `json:"venue,omitempty"`
	Customer *Profile  `json:"customer,omitempty"`
}

// Venue is a bookable property as returned by the remote service. Field names
// are carried verbatim from the wire.
type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Media       []Media   `json:"media"`
	Price       float64   `json:"price"`
	MaxGuests   int       `json:"maxGuests"`
	Rating      float64   `json:"rating,omitempty"`
	Created     time.Time `json:"created,omitempty"`
	Updated     time.Time `json:"updated,omitempty"`
	Meta        Amenities `json:"meta"`
	Location    Location  `json:"location"`
	Owner       *Profile  `json:"owner,omitempty"`
	Bookings    []Booking `json:"bookings"`
}

// BookedBetween reports whether any existing booking overlaps the half-open
// range [from, to). An inverted range overlaps nothing.
func (v Venue) BookedBetween(from, to time.Time) bool {
	if from.IsZero() || to.IsZero() || !from.Before(to) {
		return false
	}
	for _, b := range v.Bookings {
		if b.DateFrom.Before(to) && from.Before(b.DateTo) {
			return true
		}
	}
	return false
}

// Profile is a Holidaze account, optionally expanded with owned venues and
// bookings.
type Profile struct {
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Avatar       *Media    `json:"avatar,omitempty"`
	Banner       *Media    `json:"banner,omitempty"`
	VenueManager bool      `json:"venueManager"`
	Venues       []Venue   `json:"venues,omitempty"`
	Bookings     []Booking `json:"bookings,omitempty"`
}

// ProfileUpdate carries the mutable profile fields. Nil pointers are omitted
// from the request so the remote keeps existing values.
type ProfileUpdate struct {
	Bio          *string `json:"bio,omitempty"`
	Avatar       *Media  `json:"avatar,omitempty"`
	Banner       *Media  `json:"banner,omitempty"`
	VenueManager *bool   `json:"venueManager,omitempty"`
}

// VenueInput is the payload for creating or updating a venue.
type VenueInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Media       []Media   `json:"media,omitempty"`
	Price       float64   `json:"price"`
	MaxGuests   int       `json:"maxGuests"`
	Meta        Amenities `json:"meta"`
	Location    Location  `json:"location"`
}

// BookingInput is the payload for creating a booking.
type BookingInput struct {
	DateFrom time.Time `json:"dateFrom"`
	DateTo   time.Time `json:"dateTo"`
	Guests   int       `json:"guests"`
	VenueID  string    `json:"venueId"`
}

// Account is the authenticated identity returned by login.
type Account struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Bio          string `json:"bio,omitempty"`
	Avatar       *Media `json:"avatar,omitempty"`
	Banner       *Media `json:"banner,omitempty"`
	AccessToken  string `json:"accessToken"`
	VenueManager bool   `json:"venueManager"`
}

// Auth carries the per-request credentials the remote API expects on
// authenticated endpoints.
type Auth struct {
	AccessToken string
	APIKey      string
}

// Meta is the pagination envelope metadata on collection responses.
type Meta struct {
	IsFirstPage  bool `json:"isFirstPage"`
	IsLastPage   bool `json:"isLastPage"`
	CurrentPage  int  `json:"currentPage"`
	PreviousPage *int `json:"previousPage"`
	NextPage     *int `json:"nextPage"`
	PageCount    int  `json:"pageCount"`
	TotalCount   int  `json:"totalCount"`
}
