package holidazeapi

import (
	"context"
	"net/http"
	"net/url"
)

// Login authenticates against the remote service. The _holidaze flag asks the
// API to include the venueManager claim on the returned account.
func (c *Client) Login(ctx context.Context, email, password string) (*Account, error) {
	params := url.Values{}
	params.Set("_holidaze", "true")

	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var account Account
	if _, err := c.doRequest(ctx, http.MethodPost, "/auth/login", params, nil, body, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Register creates a new remote account.
func (c *Client) Register(ctx context.Context, name, email, password string, venueManager bool) (*Profile, error) {
	body := struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		VenueManager bool   `json:"venueManager"`
	}{Name: name, Email: email, Password: password, VenueManager: venueManager}

	var profile Profile
	if _, err := c.doRequest(ctx, http.MethodPost, "/auth/register", nil, nil, body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateAPIKey mints a fresh API key for the authenticated account. The
// remote requires it alongside the bearer token on every Holidaze endpoint.
func (c *Client) CreateAPIKey(ctx context.Context, accessToken string) (string, error) {
	auth := Auth{AccessToken: accessToken}

	var result struct {
		Name string `json:"name"`
		Key  string `json:"key"`
	}
	if _, err := c.doRequest(ctx, http.MethodPost, "/auth/create-api-key", nil, &auth, struct{}{}, &result); err != nil {
		return "", err
	}
	return result.Key, nil
}
