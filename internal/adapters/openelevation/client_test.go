package openelevation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

func TestLookup_PadsShortResults(t *testing.T) {
	var got lookupRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"results":[{"latitude":1,"longitude":2,"elevation":100},{"elevation":null}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	pts := []domain.GeoPoint{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}, {Lat: 5, Lon: 6}}

	elev, err := c.Lookup(context.Background(), pts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Locations) != 3 || got.Locations[2].Latitude != 5 || got.Locations[2].Longitude != 6 {
		t.Errorf("unexpected request body: %+v", got)
	}
	if len(elev) != 3 {
		t.Fatalf("expected 3 elevations, got %d", len(elev))
	}
	if elev[0] == nil || *elev[0] != 100 {
		t.Errorf("expected 100, got %v", elev[0])
	}
	if elev[1] != nil || elev[2] != nil {
		t.Errorf("expected nil padding, got %v %v", elev[1], elev[2])
	}
}

func TestLookup_EmptyInputSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	elev, err := NewClient(srv.URL, time.Second).Lookup(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elev) != 0 || called {
		t.Errorf("expected no request and no results")
	}
}

func TestLookup_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Lookup(context.Background(), []domain.GeoPoint{{Lat: 1, Lon: 1}})
	if !errors.Is(err, domain.ErrElevationUnavailable) {
		t.Fatalf("expected ErrElevationUnavailable, got %v", err)
	}
}
