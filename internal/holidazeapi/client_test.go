package holidazeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginSendsHolidazeFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("_holidaze") != "true" {
			t.Error("login request missing _holidaze=true")
		}

		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
			t.Errorf("bad login body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": Account{
				Name:         "holly",
				Email:        body.Email,
				VenueManager: true,
				AccessToken:  "remote-token",
			},
		})
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 0)

	account, err := client.Login(context.Background(), "holly@stud.noroff.no", "hunter22")
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if account.Name != "holly" || !account.VenueManager || account.AccessToken != "remote-token" {
		t.Errorf("Login() = %+v", account)
	}
}

func TestLoginRemoteErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"Invalid email or password"}],"status":"Unauthorized"}`))
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 0)

	_, err := client.Login(context.Background(), "holly@stud.noroff.no", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Login() error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid email or password" {
		t.Errorf("APIError = %+v, want remote message surfaced", apiErr)
	}
}

func TestAuthenticatedRequestHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer remote-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("X-Noroff-API-Key"); got != "api-key" {
			t.Errorf("X-Noroff-API-Key = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": Profile{Name: "holly"},
		})
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 0)
	auth := Auth{AccessToken: "remote-token", APIKey: "api-key"}

	profile, err := client.Profile(context.Background(), auth, "holly")
	if err != nil {
		t.Fatalf("Profile() unexpected error: %v", err)
	}
	if profile.Name != "holly" {
		t.Errorf("Profile() = %+v", profile)
	}
}

func TestDeleteVenueNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 0)

	if err := client.DeleteVenue(context.Background(), Auth{AccessToken: "tok"}, "v1"); err != nil {
		t.Fatalf("DeleteVenue() unexpected error: %v", err)
	}
}

func TestBreakerOpensOnRepeatedOutage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := client.Venue(ctx, "v1"); err == nil {
			t.Fatalf("request %d unexpectedly succeeded", i)
		}
	}

	// Circuit is now open; the next call must fail fast without a request.
	start := time.Now()
	_, err := client.Venue(ctx, "v1")
	if err == nil {
		t.Fatal("expected open-circuit error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("open circuit returned a remote error: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("open circuit did not fail fast")
	}
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"message":"no such venue"}]}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 0)
	ctx := context.Background()

	// A stream of 4xx responses must keep the circuit closed.
	for i := 0; i < 6; i++ {
		_, err := client.Venue(ctx, "missing")
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
			t.Fatalf("request %d error = %v, want 404 APIError", i, err)
		}
	}
}
