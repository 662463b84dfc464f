package geo_test

import (
	"context"
	"encoding"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/riya-n/step204-2020/internal/cache"
	"github.com/riya-n/step204-2020/internal/config"
	"github.com/riya-n/step204-2020/internal/errors"
	"github.com/riya-n/step204-2020/internal/geo"
)

// mapCache is an in-memory cache.Cache for tests.
type mapCache struct {
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m, ok := value.(encoding.BinaryMarshaler)
	if !ok {
		return cache.ErrInvalidValue
	}
	b, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *mapCache) Get(ctx context.Context, key string, value interface{}) error {
	b, ok := c.data[key]
	if !ok {
		return cache.ErrNotFound
	}
	u, ok := value.(encoding.BinaryUnmarshaler)
	if !ok {
		return cache.ErrInvalidValue
	}
	return u.UnmarshalBinary(b)
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *mapCache) Close() error { return nil }

func placesBody(coords ...geo.Coordinates) string {
	body := `{"status": "OK", "candidates": [`
	for i, c := range coords {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"name": "Singapore", "geometry": {"location": {"lat": %f, "lng": %f}}}`,
			c.Latitude, c.Longitude)
	}
	return body + `]}`
}

func geocoderConfig(baseURL string) *config.Config {
	return &config.Config{
		PlacesAPIBaseURL: baseURL,
		PlacesAPITimeout: 2 * time.Second,
		GeocodeCacheTTL:  time.Hour,
	}
}

func TestResolveCoordinates_SingleInBoundsResult(t *testing.T) {
	inBounds := geo.Coordinates{Latitude: 1.3039, Longitude: 103.8318}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("input"); got != "Singapore 238859" {
			t.Errorf("input param = %q, want %q", got, "Singapore 238859")
		}
		_, _ = w.Write([]byte(placesBody(inBounds)))
	}))
	defer srv.Close()

	g := geo.NewGeocoder(zap.NewNop(), geocoderConfig(srv.URL), newMapCache())
	coords, err := g.ResolveCoordinates(context.Background(), "238859")
	if err != nil {
		t.Fatalf("ResolveCoordinates returned error: %v", err)
	}
	if coords != inBounds {
		t.Errorf("coords = %+v, want %+v", coords, inBounds)
	}
}

func TestResolveCoordinates_RejectsZeroAndMultipleResults(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"zero results", `{"status": "ZERO_RESULTS", "candidates": []}`},
		{"ok but empty", `{"status": "OK", "candidates": []}`},
		{"two results", placesBody(
			geo.Coordinates{Latitude: 1.30, Longitude: 103.83},
			geo.Coordinates{Latitude: 1.31, Longitude: 103.84},
		)},
	}
	for _, c := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(c.body))
		}))

		g := geo.NewGeocoder(zap.NewNop(), geocoderConfig(srv.URL), newMapCache())
		_, err := g.ResolveCoordinates(context.Background(), "000000")
		if !errors.IsValidation(err) {
			t.Errorf("%s: want VALIDATION error, got %v", c.name, err)
		}
		srv.Close()
	}
}

func TestResolveCoordinates_RejectsOutOfBoundsResult(t *testing.T) {
	kualaLumpur := geo.Coordinates{Latitude: 3.1390, Longitude: 101.6869}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(placesBody(kualaLumpur)))
	}))
	defer srv.Close()

	g := geo.NewGeocoder(zap.NewNop(), geocoderConfig(srv.URL), newMapCache())
	_, err := g.ResolveCoordinates(context.Background(), "999999")
	if !errors.IsValidation(err) {
		t.Errorf("want VALIDATION error for out-of-bounds place, got %v", err)
	}
}

func TestResolveCoordinates_SecondLookupServedFromCache(t *testing.T) {
	inBounds := geo.Coordinates{Latitude: 1.3039, Longitude: 103.8318}
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(placesBody(inBounds)))
	}))
	defer srv.Close()

	g := geo.NewGeocoder(zap.NewNop(), geocoderConfig(srv.URL), newMapCache())
	ctx := context.Background()

	if _, err := g.ResolveCoordinates(ctx, "238859"); err != nil {
		t.Fatalf("first resolve returned error: %v", err)
	}
	coords, err := g.ResolveCoordinates(ctx, "238859")
	if err != nil {
		t.Fatalf("second resolve returned error: %v", err)
	}
	if coords != inBounds {
		t.Errorf("cached coords = %+v, want %+v", coords, inBounds)
	}
	if requests != 1 {
		t.Errorf("places API hit %d times, want 1", requests)
	}
}

func TestResolveCoordinates_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := geo.NewGeocoder(zap.NewNop(), geocoderConfig(srv.URL), newMapCache())
	_, err := g.ResolveCoordinates(context.Background(), "238859")
	if !errors.IsTransport(err) {
		t.Errorf("want TRANSPORT error, got %v", err)
	}
}
