package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/riya-n/step204-2020/internal/cache"
	"github.com/riya-n/step204-2020/internal/config"
	"github.com/riya-n/step204-2020/internal/errors"
	"github.com/riya-n/step204-2020/internal/telemetry"
)

var tracer = telemetry.GetTracer("step204/webapp/geo")

// Geocoder resolves a Singapore postal code to coordinates.
type Geocoder interface {
	ResolveCoordinates(ctx context.Context, postalCode string) (Coordinates, error)
}

type placesGeocoder struct {
	client *http.Client
	logger *zap.Logger
	config *config.Config
	cache  cache.Cache
}

func NewGeocoder(logger *zap.Logger, config *config.Config, c cache.Cache) Geocoder {
	return &placesGeocoder{
		client: &http.Client{
			Timeout: config.PlacesAPITimeout,
		},
		logger: logger,
		config: config,
		cache:  c,
	}
}

type placesResponse struct {
	Status     string `json:"status"`
	Candidates []struct {
		Name     string `json:"name"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"candidates"`
}

// ResolveCoordinates queries the places API for "Singapore {postalCode}".
// It succeeds only when exactly one place comes back and its coordinates
// lie inside the Singapore bounds. Postal codes do not move, so resolved
// coordinates are cached.
func (g *placesGeocoder) ResolveCoordinates(ctx context.Context, postalCode string) (Coordinates, error) {
	ctx, span := tracer.Start(ctx, "ResolveCoordinates")
	defer span.End()
	span.SetAttributes(telemetry.String("geo.postal_code", postalCode))

	cacheKey := "geo:postal:" + postalCode

	var cached Coordinates
	err := g.cache.Get(ctx, cacheKey, &cached)
	if err == nil {
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		g.logger.Debug("geocode cache hit", zap.String("postal_code", postalCode))
		return cached, nil
	} else if err != cache.ErrNotFound {
		span.SetAttributes(telemetry.String("cache.result", "error"))
		span.RecordError(err)
		g.logger.Warn("geocode cache error", zap.Error(err))
	} else {
		span.SetAttributes(telemetry.String("cache.result", "miss"))
	}

	params := url.Values{}
	params.Set("input", "Singapore "+postalCode)
	params.Set("inputtype", "textquery")
	params.Set("fields", "name,geometry")
	if g.config.PlacesAPIKey != "" {
		params.Set("key", g.config.PlacesAPIKey)
	}

	reqURL := g.config.PlacesAPIBaseURL + "/findplacefromtext/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		span.RecordError(err)
		return Coordinates{}, errors.Internal("creating places request", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		span.RecordError(err)
		g.logger.Error("failed to execute places request", zap.Error(err))
		return Coordinates{}, errors.Transport("executing places request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			g.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		g.logger.Error("unexpected places status code", zap.Int("status_code", resp.StatusCode))
		return Coordinates{}, errors.Transport(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var result placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		g.logger.Error("failed to decode places response", zap.Error(err))
		return Coordinates{}, errors.Transport("decoding places response", err)
	}

	if result.Status != "OK" || len(result.Candidates) != 1 {
		g.logger.Warn("postal code did not resolve to one place",
			zap.String("postal_code", postalCode),
			zap.String("status", result.Status),
			zap.Int("candidates", len(result.Candidates)))
		return Coordinates{}, errors.Validation(
			"unable to find one place for given postal code: "+postalCode, nil)
	}

	coords := Coordinates{
		Latitude:  result.Candidates[0].Geometry.Location.Lat,
		Longitude: result.Candidates[0].Geometry.Location.Lng,
	}
	span.SetAttributes(
		telemetry.Float64("geo.latitude", coords.Latitude),
		telemetry.Float64("geo.longitude", coords.Longitude),
	)

	if !SingaporeBounds.Contains(coords) {
		g.logger.Warn("resolved place lies outside Singapore",
			zap.String("postal_code", postalCode),
			zap.Float64("latitude", coords.Latitude),
			zap.Float64("longitude", coords.Longitude))
		return Coordinates{}, errors.Validation(
			"place for postal code "+postalCode+" is outside Singapore", nil)
	}

	if err := g.cache.Set(ctx, cacheKey, coords, g.config.GeocodeCacheTTL); err != nil {
		g.logger.Warn("failed to cache geocode result", zap.Error(err))
	}

	return coords, nil
}
