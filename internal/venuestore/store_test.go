package venuestore

import (
	"sync"
	"testing"

	"holidaze/internal/holidazeapi"
)

func TestStoreLifecycle(t *testing.T) {
	s := New()

	if s.Populated() {
		t.Error("fresh store reports populated")
	}
	if s.Loading() {
		t.Error("fresh store reports loading")
	}
	if got := s.Venues(); got != nil {
		t.Errorf("fresh store Venues() = %v, want nil", got)
	}

	venues := []holidazeapi.Venue{{ID: "a"}, {ID: "b"}}
	s.SetLoading(true)
	s.SetVenues(venues)
	s.SetLoading(false)

	if !s.Populated() {
		t.Error("store not populated after SetVenues")
	}
	if got := s.Venues(); len(got) != 2 || got[0].ID != "a" {
		t.Errorf("Venues() = %v, want the stored list", got)
	}

	s.Clear()
	if s.Populated() || s.Loading() || s.Venues() != nil {
		t.Error("Clear did not reset the store")
	}
}

func TestStoreEmptyListIsPopulated(t *testing.T) {
	s := New()
	s.SetVenues([]holidazeapi.Venue{})

	// A remote collection with zero venues is still a completed fetch.
	if !s.Populated() {
		t.Error("empty fetch result must mark the store populated")
	}
	if got := s.Venues(); got == nil || len(got) != 0 {
		t.Errorf("Venues() = %v, want empty non-nil slice", got)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := New()
	venues := []holidazeapi.Venue{{ID: "a"}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetVenues(venues)
			s.SetLoading(false)
		}()
		go func() {
			defer wg.Done()
			_ = s.Venues()
			_ = s.Populated()
			_ = s.Loading()
		}()
	}
	wg.Wait()

	if !s.Populated() {
		t.Error("store lost its populated flag")
	}
}
