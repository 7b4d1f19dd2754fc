package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"waypoint/internal/types"
)

// GeocodingService resolves free-text place names to coordinates using the
// Google Geocoding API.
type GeocodingService struct {
	client  *maps.Client
	timeout time.Duration
}

// NewGeocodingService creates a GeocodingService on top of an existing client.
func NewGeocodingService(client *maps.Client, timeout time.Duration) *GeocodingService {
	return &GeocodingService{client: client, timeout: timeout}
}

// NewClient builds the shared Google Maps client for the given API key.
func NewClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

// Geocode resolves locationName to coordinates. A provider error or an empty
// result set returns (nil, err/nil); callers treat nil coordinates as
// "search unbiased", never as a hard failure.
func (s *GeocodingService) Geocode(ctx context.Context, locationName string) (*types.LatLng, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: locationName})
	if err != nil {
		return nil, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	loc := results[0].Geometry.Location
	return &types.LatLng{Lat: loc.Lat, Lng: loc.Lng}, nil
}
