// README: Place search via Google Places text search, with ranking and URL derivation.
package places

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"waypoint/internal/types"
)

// ErrSearchUnavailable wraps provider timeouts, transport errors, and non-2xx
// responses from the place index.
var ErrSearchUnavailable = errors.New("place search unavailable")

// urlNotAvailable is used for derived URLs when the provider omits a place_id.
const urlNotAvailable = "not available"

// TextSearcher is the slice of the Google Maps client the service needs.
type TextSearcher interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
}

// Service executes structured search queries against the place index and
// normalizes ranked candidates.
type Service struct {
	searcher TextSearcher
	embedKey string
	timeout  time.Duration
}

// NewService creates a Service. embedKey is only used to derive embed URLs.
func NewService(searcher TextSearcher, embedKey string, timeout time.Duration) *Service {
	return &Service{searcher: searcher, embedKey: embedKey, timeout: timeout}
}

// Search runs the text search with the bias resolved by the caller: the
// request's explicit LocationBias wins, then coords with the default radius,
// then no bias at all.
func (s *Service) Search(ctx context.Context, req types.SearchRequest, coords *types.LatLng) (types.SearchResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	r := &maps.TextSearchRequest{Query: buildQuery(req)}
	if req.OpenNow != nil && *req.OpenNow {
		r.OpenNow = true
	}
	switch {
	case req.LocationBias != nil:
		r.Location = &maps.LatLng{Lat: req.LocationBias.Lat, Lng: req.LocationBias.Lng}
		r.Radius = uint(req.LocationBias.RadiusM)
	case coords != nil:
		r.Location = &maps.LatLng{Lat: coords.Lat, Lng: coords.Lng}
		r.Radius = types.DefaultBiasRadiusM
	}
	if len(req.PlaceTypes) == 1 {
		// The legacy text search accepts a single type restriction.
		r.Type = maps.PlaceType(req.PlaceTypes[0])
	}

	resp, err := s.searcher.TextSearch(ctx, r)
	if err != nil {
		return types.SearchResponse{}, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}

	results := s.normalize(resp.Results, req)
	if req.SortBy != "distance" {
		rankByRating(results)
	}
	if len(results) > req.Limit {
		results = results[:req.Limit]
	}

	out := types.SearchResponse{Query: req.Query, Results: results}
	if resp.NextPageToken != "" {
		token := resp.NextPageToken
		out.Paging.NextPageToken = &token
	}
	return out, nil
}

// buildQuery folds cuisine refinements into the textual query the way the
// place index expects them ("italian sushi restaurants in ...").
func buildQuery(req types.SearchRequest) string {
	if len(req.Cuisine) == 0 {
		return req.Query
	}
	return strings.Join(req.Cuisine, " ") + " " + req.Query
}

func (s *Service) normalize(raw []maps.PlacesSearchResult, req types.SearchRequest) []types.PlaceResult {
	results := make([]types.PlaceResult, 0, len(raw))
	for _, place := range raw {
		rating := float64(place.Rating)
		if req.MinRating != nil && rating < *req.MinRating {
			continue
		}

		res := types.PlaceResult{
			Name:          place.Name,
			PlaceID:       place.PlaceID,
			Address:       place.FormattedAddress,
			EmbedURL:      s.embedURL(place.PlaceID),
			DirectionsURL: directionsURL(place.PlaceID),
		}
		if rating > 0 {
			res.Rating = &rating
		}
		if place.UserRatingsTotal > 0 {
			count := place.UserRatingsTotal
			res.RatingCount = &count
		}
		if place.PriceLevel >= 1 && place.PriceLevel <= 4 {
			level := place.PriceLevel
			res.PriceLevel = &level
		}
		loc := place.Geometry.Location
		if loc.Lat != 0 || loc.Lng != 0 {
			res.Location = &types.LatLng{Lat: loc.Lat, Lng: loc.Lng}
		}
		if place.OpeningHours != nil && place.OpeningHours.OpenNow != nil {
			open := *place.OpeningHours.OpenNow
			res.OpenNow = &open
		}
		results = append(results, res)
	}
	return results
}

// rankByRating sorts descending by (rating, rating count); ties keep the
// provider's original order.
func rankByRating(results []types.PlaceResult) {
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := ratingOrZero(results[i]), ratingOrZero(results[j])
		if ri != rj {
			return ri > rj
		}
		return countOrZero(results[i]) > countOrZero(results[j])
	})
}

func ratingOrZero(p types.PlaceResult) float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

func countOrZero(p types.PlaceResult) int {
	if p.RatingCount == nil {
		return 0
	}
	return *p.RatingCount
}

func (s *Service) embedURL(placeID string) string {
	if placeID == "" {
		return urlNotAvailable
	}
	return fmt.Sprintf("https://www.google.com/maps/embed/v1/place?q=place_id:%s&key=%s", placeID, s.embedKey)
}

func directionsURL(placeID string) string {
	if placeID == "" {
		return urlNotAvailable
	}
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=place_id:%s&destination_place_id=%s", placeID, placeID)
}
