package search

import (
	"testing"

	"holidaze/internal/holidazeapi"
)

func indexVenues() []holidazeapi.Venue {
	return []holidazeapi.Venue{
		{ID: "0", Name: "Fjord Cabin", Location: holidazeapi.Location{City: "Oslo", Country: "Norway"}},
		{ID: "1", Name: "Harbour Loft", Location: holidazeapi.Location{City: "Bergen", Country: "Norway"}},
		{ID: "2", Name: "Alfama Flat", Location: holidazeapi.Location{City: "Lisbon", Country: "Portugal"}},
		{ID: "3", Name: ""},
	}
}

func TestIndexSearch(t *testing.T) {
	ix := NewIndex(indexVenues())

	tests := []struct {
		name       string
		query      string
		wantVenues []int
	}{
		{"empty query", "", nil},
		{"blank query", "   ", nil},
		{"exact city", "oslo", []int{0}},
		{"case insensitive", "OSLO", []int{0}},
		{"subsequence", "osl", []int{0}},
		{"transposed letters", "osol", []int{0}},
		{"within edit tolerance", "bergan", []int{1}},
		{"shared country", "norway", []int{0, 1}},
		{"venue name token", "cabin", []int{0}},
		{"beyond tolerance", "zzzzzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := ix.Search(tt.query)
			if len(matches) != len(tt.wantVenues) {
				t.Fatalf("Search(%q) = %v, want venues %v", tt.query, matches, tt.wantVenues)
			}
			seen := make(map[int]bool, len(matches))
			for _, m := range matches {
				seen[m.Venue] = true
			}
			for _, v := range tt.wantVenues {
				if !seen[v] {
					t.Errorf("Search(%q) missing venue %d in %v", tt.query, v, matches)
				}
			}
		})
	}
}

func TestIndexSearchOneMatchPerVenue(t *testing.T) {
	// "norway fjord" keys overlap for venue 0; it must surface once.
	ix := NewIndex(indexVenues())

	matches := ix.Search("nor")
	counts := make(map[int]int)
	for _, m := range matches {
		counts[m.Venue]++
	}
	for venue, n := range counts {
		if n > 1 {
			t.Errorf("venue %d appeared %d times", venue, n)
		}
	}
}

func TestIndexSearchRanking(t *testing.T) {
	ix := NewIndex(indexVenues())

	matches := ix.Search("oslo")
	if len(matches) == 0 {
		t.Fatal("no matches")
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not sorted by score: %v", matches)
		}
	}
}

func TestIndexEmptyKeys(t *testing.T) {
	ix := NewIndex(indexVenues())

	// Venue 3 has no keys at all and must never match anything.
	for _, query := range []string{"", "a", "oslo", "flat"} {
		for _, m := range ix.Search(query) {
			if m.Venue == 3 {
				t.Errorf("keyless venue matched query %q", query)
			}
		}
	}
}
