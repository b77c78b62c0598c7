package holidazeapi

import (
	"context"
	"net/http"
)

// CreateBooking reserves a venue for the given interval. The remote service
// is the final authority on conflicts; callers may pre-check availability
// but must still handle a rejection here.
func (c *Client) CreateBooking(ctx context.Context, auth Auth, input BookingInput) (*Booking, error) {
	var booking Booking
	if _, err := c.doRequest(ctx, http.MethodPost, "/holidaze/bookings", nil, &auth, input, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
