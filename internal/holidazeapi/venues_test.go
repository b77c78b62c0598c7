package holidazeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testClient(t *testing.T, baseURL string, pageSize int) *Client {
	t.Helper()
	return NewClient(Config{
		BaseURL:  baseURL,
		PageSize: pageSize,
	}, zerolog.Nop())
}

func pageHandler(t *testing.T, pages [][]Venue, markLastPage bool) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/holidaze/venues" {
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 || page > len(pages) {
			t.Errorf("unexpected page parameter %q", r.URL.Query().Get("page"))
			http.Error(w, "bad page", http.StatusBadRequest)
			return
		}

		payload := struct {
			Data []Venue `json:"data"`
			Meta Meta    `json:"meta"`
		}{
			Data: pages[page-1],
			Meta: Meta{
				CurrentPage: page,
				IsLastPage:  markLastPage && page == len(pages),
				PageCount:   len(pages),
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func makeVenues(prefix string, n int) []Venue {
	venues := make([]Venue, n)
	for i := range venues {
		venues[i] = Venue{
			ID:        fmt.Sprintf("%s-%d", prefix, i),
			Name:      fmt.Sprintf("Venue %s %d", prefix, i),
			MaxGuests: 2,
		}
	}
	return venues
}

func TestFetchAllVenues_AllPages(t *testing.T) {
	pages := [][]Venue{
		makeVenues("a", 3),
		makeVenues("b", 3),
		makeVenues("c", 2),
	}

	srv := httptest.NewServer(pageHandler(t, pages, true))
	defer srv.Close()

	client := testClient(t, srv.URL, 3)

	venues, err := client.FetchAllVenues(context.Background())
	if err != nil {
		t.Fatalf("FetchAllVenues() unexpected error: %v", err)
	}

	want := append(append(append([]Venue{}, pages[0]...), pages[1]...), pages[2]...)
	if len(venues) != len(want) {
		t.Fatalf("FetchAllVenues() returned %d venues, want %d", len(venues), len(want))
	}
	for i := range want {
		if venues[i].ID != want[i].ID {
			t.Errorf("venue %d: got ID %q, want %q (page order must be preserved)", i, venues[i].ID, want[i].ID)
		}
	}
}

func TestFetchAllVenues_ShortPageStops(t *testing.T) {
	// isLastPage never set; the short second page must still terminate the loop.
	pages := [][]Venue{
		makeVenues("a", 3),
		makeVenues("b", 1),
	}

	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		pageHandler(t, pages, false)(w, r)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 3)

	venues, err := client.FetchAllVenues(context.Background())
	if err != nil {
		t.Fatalf("FetchAllVenues() unexpected error: %v", err)
	}
	if len(venues) != 4 {
		t.Fatalf("FetchAllVenues() returned %d venues, want 4", len(venues))
	}
	if requests != 2 {
		t.Errorf("server saw %d requests, want 2 (short page must stop pagination)", requests)
	}
}

func TestFetchAllVenues_FailureDiscardsPartial(t *testing.T) {
	pages := [][]Venue{makeVenues("a", 3)}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			http.Error(w, `{"errors":[{"message":"boom"}]}`, http.StatusInternalServerError)
			return
		}
		pageHandler(t, [][]Venue{pages[0], nil}, false)(w, r)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 3)

	venues, err := client.FetchAllVenues(context.Background())
	if err == nil {
		t.Fatal("FetchAllVenues() expected error, got nil")
	}
	if venues != nil {
		t.Errorf("FetchAllVenues() returned partial accumulation %d venues, want nil", len(venues))
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("FetchAllVenues() error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("APIError.Status = %d, want 500", apiErr.Status)
	}
}

func TestFetchAllVenues_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			cancel()
			// Hold the in-flight request so the abort is what ends it.
			time.Sleep(100 * time.Millisecond)
			return
		}
		pageHandler(t, [][]Venue{makeVenues("a", 3), makeVenues("b", 3)}, true)(w, r)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 3)

	venues, err := client.FetchAllVenues(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("FetchAllVenues() error = %v, want context.Canceled", err)
	}
	if venues != nil {
		t.Errorf("FetchAllVenues() returned venues after cancellation")
	}
}

func TestFetchAllVenues_NormalizesRecords(t *testing.T) {
	pages := [][]Venue{
		{
			{ID: "ok", Name: "Fine", MaxGuests: 4},
			{Name: "No ID"}, // must be rejected at the boundary
			{ID: "tiny", Name: "Zero guests", MaxGuests: 0},
		},
	}

	srv := httptest.NewServer(pageHandler(t, pages, true))
	defer srv.Close()

	client := testClient(t, srv.URL, 100)

	venues, err := client.FetchAllVenues(context.Background())
	if err != nil {
		t.Fatalf("FetchAllVenues() unexpected error: %v", err)
	}
	if len(venues) != 2 {
		t.Fatalf("FetchAllVenues() returned %d venues, want 2", len(venues))
	}
	for _, v := range venues {
		if v.Media == nil || v.Bookings == nil {
			t.Errorf("venue %q: media/bookings slices not normalized", v.ID)
		}
		if v.MaxGuests < 1 {
			t.Errorf("venue %q: maxGuests %d not normalized", v.ID, v.MaxGuests)
		}
	}
}

func TestSearchVenues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/holidaze/venues/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "fjord" {
			t.Errorf("q = %q, want %q", got, "fjord")
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []Venue{
				{ID: "v1", Name: "Fjord Cabin", MaxGuests: 4},
				{Name: "No ID"},
			},
		})
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 100)

	venues, err := client.SearchVenues(context.Background(), "fjord")
	if err != nil {
		t.Fatalf("SearchVenues() unexpected error: %v", err)
	}
	if len(venues) != 1 || venues[0].ID != "v1" {
		t.Fatalf("SearchVenues() = %v, want just v1 after normalization", venues)
	}
	if venues[0].Media == nil || venues[0].Bookings == nil {
		t.Error("search results not normalized")
	}
}

func TestVenueBookedBetween(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
	}
	venue := Venue{
		ID: "v1",
		Bookings: []Booking{
			{DateFrom: day(1), DateTo: day(10)},
		},
	}

	tests := []struct {
		name     string
		from, to time.Time
		want     bool
	}{
		{"overlap inside", day(5), day(7), true},
		{"after checkout", day(11), day(12), false},
		{"checkout day is free", day(10), day(12), false},
		{"ends on checkin day", day(1), day(1), false},
		{"inverted range", day(7), day(5), false},
		{"touching start overlaps", day(9), day(15), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := venue.BookedBetween(tt.from, tt.to); got != tt.want {
				t.Errorf("BookedBetween(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
