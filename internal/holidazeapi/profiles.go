package holidazeapi

import (
	"context"
	"net/http"
	"net/url"
)

const profilesPath = "/holidaze/profiles"

// Profile retrieves a profile with its venues and bookings expanded.
func (c *Client) Profile(ctx context.Context, auth Auth, name string) (*Profile, error) {
	params := url.Values{}
	params.Set("_venues", "true")
	params.Set("_bookings", "true")

	var profile Profile
	if _, err := c.doRequest(ctx, http.MethodGet, profilesPath+"/"+name, params, &auth, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial update to the named profile.
func (c *Client) UpdateProfile(ctx context.Context, auth Auth, name string, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	if _, err := c.doRequest(ctx, http.MethodPut, profilesPath+"/"+name, nil, &auth, update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ProfileVenues lists the venues owned by the named profile, with their
// bookings expanded for the manager dashboard.
func (c *Client) ProfileVenues(ctx context.Context, auth Auth, name string) ([]Venue, error) {
	params := url.Values{}
	params.Set("_bookings", "true")

	var venues []Venue
	if _, err := c.doRequest(ctx, http.MethodGet, profilesPath+"/"+name+"/venues", params, &auth, nil, &venues); err != nil {
		return nil, err
	}
	return normalizeVenues(venues), nil
}

// ProfileBookings lists the bookings made by the named profile, with the
// booked venue expanded.
func (c *Client) ProfileBookings(ctx context.Context, auth Auth, name string) ([]Booking, error) {
	params := url.Values{}
	params.Set("_venue", "true")

	var bookings []Booking
	if _, err := c.doRequest(ctx, http.MethodGet, profilesPath+"/"+name+"/bookings", params, &auth, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
