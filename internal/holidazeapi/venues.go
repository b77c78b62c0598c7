package holidazeapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const venuesPath = "/holidaze/venues"

// FetchAllVenues walks the paginated venues collection and returns the full
// list. Pages are requested in increasing order and appended as received, so
// the result preserves the server's creation-time-descending ordering.
//
// The whole operation aborts on the first failed page; nothing partial is
// returned. Context cancellation surfaces as ctx.Err().
func (c *Client) FetchAllVenues(ctx context.Context) ([]Venue, error) {
	var all []Venue

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		params := url.Values{}
		params.Set("limit", strconv.Itoa(c.pageSize))
		params.Set("page", strconv.Itoa(page))
		params.Set("sort", "created")
		params.Set("sortOrder", "desc")
		params.Set("_owner", "true")
		params.Set("_bookings", "true")

		var venues []Venue
		meta, err := c.doRequest(ctx, http.MethodGet, venuesPath, params, nil, nil, &venues)
		if err != nil {
			return nil, err
		}

		all = append(all, normalizeVenues(venues)...)

		// A short page also terminates: some deployments omit meta.
		if meta == nil || meta.IsLastPage || len(venues) < c.pageSize {
			break
		}
	}

	c.logger.Debug().Int("venues", len(all)).Msg("fetched full venue collection")
	return all, nil
}

// SearchVenues queries the remote full-text search endpoint.
func (c *Client) SearchVenues(ctx context.Context, query string) ([]Venue, error) {
	params := url.Values{}
	params.Set("q", query)

	var venues []Venue
	if _, err := c.doRequest(ctx, http.MethodGet, venuesPath+"/search", params, nil, nil, &venues); err != nil {
		return nil, err
	}
	return normalizeVenues(venues), nil
}

// Venue retrieves a single venue with owner and bookings expanded.
func (c *Client) Venue(ctx context.Context, id string) (*Venue, error) {
	params := url.Values{}
	params.Set("_owner", "true")
	params.Set("_bookings", "true")

	var venue Venue
	if _, err := c.doRequest(ctx, http.MethodGet, venuesPath+"/"+id, params, nil, nil, &venue); err != nil {
		return nil, err
	}
	normalizeVenue(&venue)
	return &venue, nil
}

// CreateVenue registers a new venue owned by the authenticated manager.
func (c *Client) CreateVenue(ctx context.Context, auth Auth, input VenueInput) (*Venue, error) {
	var venue Venue
	if _, err := c.doRequest(ctx, http.MethodPost, venuesPath, nil, &auth, input, &venue); err != nil {
		return nil, err
	}
	normalizeVenue(&venue)
	return &venue, nil
}

// UpdateVenue replaces the mutable fields of an owned venue.
func (c *Client) UpdateVenue(ctx context.Context, auth Auth, id string, input VenueInput) (*Venue, error) {
	var venue Venue
	if _, err := c.doRequest(ctx, http.MethodPut, venuesPath+"/"+id, nil, &auth, input, &venue); err != nil {
		return nil, err
	}
	normalizeVenue(&venue)
	return &venue, nil
}

// DeleteVenue removes an owned venue.
func (c *Client) DeleteVenue(ctx context.Context, auth Auth, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, venuesPath+"/"+id, nil, &auth, nil, nil)
	return err
}

// normalizeVenues drops records that cannot be addressed and normalizes the
// rest, so malformed remote data never enters the store.
func normalizeVenues(venues []Venue) []Venue {
	out := make([]Venue, 0, len(venues))
	for i := range venues {
		if venues[i].ID == "" {
			continue
		}
		normalizeVenue(&venues[i])
		out = append(out, venues[i])
	}
	return out
}

func normalizeVenue(v *Venue) {
	if v.Media == nil {
		v.Media = []Media{}
	}
	if v.Bookings == nil {
		v.Bookings = []Booking{}
	}
	if v.MaxGuests < 1 {
		v.MaxGuests = 1
	}
}
