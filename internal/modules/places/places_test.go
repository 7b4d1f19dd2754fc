// README: Place search tests (ranking, normalization, bias plumbing).
package places

import (
	"context"
	"errors"
	"testing"
	"time"

	"googlemaps.github.io/maps"

	"waypoint/internal/types"
)

// stubSearcher is a test double for the Google Maps text search call.
type stubSearcher struct {
	resp    maps.PlacesSearchResponse
	err     error
	lastReq *maps.TextSearchRequest
}

func (s *stubSearcher) TextSearch(_ context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error) {
	s.lastReq = r
	return s.resp, s.err
}

func searchResult(name, placeID string, rating float32, count int) maps.PlacesSearchResult {
	return maps.PlacesSearchResult{
		Name:             name,
		PlaceID:          placeID,
		Rating:           rating,
		UserRatingsTotal: count,
	}
}

func newTestService(stub *stubSearcher) *Service {
	return NewService(stub, "embed-key", 10*time.Second)
}

func TestSearch_RankingByRatingThenCount(t *testing.T) {
	stub := &stubSearcher{resp: maps.PlacesSearchResponse{
		Results: []maps.PlacesSearchResult{
			searchResult("four-ten", "p1", 4, 10),
			searchResult("four-fifty", "p2", 4, 50),
			searchResult("five-one", "p3", 5, 1),
		},
	}}
	svc := newTestService(stub)

	resp, err := svc.Search(context.Background(), types.SearchRequest{Query: "cafe", Limit: 5}, nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	want := []string{"five-one", "four-fifty", "four-ten"}
	if len(resp.Results) != len(want) {
		t.Fatalf("got %d results, want %d", len(resp.Results), len(want))
	}
	for i, name := range want {
		if resp.Results[i].Name != name {
			t.Errorf("rank %d: got %s, want %s", i, resp.Results[i].Name, name)
		}
	}
}

func TestSearch_TiesKeepProviderOrder(t *testing.T) {
	stub := &stubSearcher{resp: maps.PlacesSearchResponse{
		Results: []maps.PlacesSearchResult{
			searchResult("first", "p1", 4, 20),
			searchResult("second", "p2", 4, 20),
			searchResult("third", "p3", 4, 20),
		},
	}}
	svc := newTestService(stub)

	resp, err := svc.Search(context.Background(), types.SearchRequest{Query: "bar", Limit: 5}, nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for i, name := range []string{"first", "second", "third"} {
		if resp.Results[i].Name != name {
			t.Errorf("rank %d: got %s, want %s (stable sort broke ties)", i, resp.Results[i].Name, name)
		}
	}
}

func TestSearch_DistanceSortKeepsProviderOrder(t *testing.T) {
	stub := &stubSearcher{resp: maps.PlacesSearchResponse{
		Results: []maps.PlacesSearchResult{
			searchResult("nearest", "p1", 3, 5),
			searchResult("further", "p2", 5, 100),
		},
	}}
	svc := newTestService(stub)

	resp, err := svc.Search(context.Background(), types.SearchRequest{Query: "atm", Limit: 5, SortBy: "distance"}, nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Results[0].Name != "nearest" {
		t.Errorf("distance mode must keep provider order, got %s first", resp.Results[0].Name)
	}
}

func TestSearch_MinRatingFilterAndLimit(t *testing.T) {
	stub := &stubSearcher{resp: maps.PlacesSearchResponse{
		Results: []maps.PlacesSearchResult{
			searchResult("low", "p1", 3.4, 10),
			searchResult("a", "p2", 4.9, 10),
			searchResult("b", "p3", 4.8, 10),
			searchResult("c", "p4", 4.7, 10),
		},
	}}
	svc := newTestService(stub)

	minRating := 4.0
	resp, err := svc.Search(context.Background(), types.SearchRequest{
		Query: "ramen", Limit: 2, MinRating: &minRating,
	}, nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	for _, r := range resp.Results {
		if r.Name == "low" {
			t.Error("result below min_rating was not filtered")
		}
	}
}

func TestSearch_MissingPlaceIDKeptWithoutURLs(t *testing.T) {
	stub := &stubSearcher{resp: maps.PlacesSearchResponse{
		Results: []maps.PlacesSearchResult{searchResult("anon", "", 4.2, 7)},
	}}
	svc := newTestService(stub)

	resp, err := svc.Search(context.Background(), types.SearchRequest{Query: "x", Limit: 5}, nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("result missing place_id must still be included")
	}
	got := resp.Results[0]
	if got.EmbedURL != urlNotAvailable || got.DirectionsURL != urlNotAvailable {
		t.Errorf("expected %q URLs, got embed=%q directions=%q", urlNotAvailable, got.EmbedURL, got.DirectionsURL)
	}
}

func TestSearch_URLDerivation(t *testing.T) {
	stub := &stubSearcher{resp: maps.PlacesSearchResponse{
		Results: []maps.PlacesSearchResult{searchResult("spot", "abc123", 4.2, 7)},
	}}
	svc := newTestService(stub)

	resp, err := svc.Search(context.Background(), types.SearchRequest{Query: "x", Limit: 5}, nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	got := resp.Results[0]
	wantEmbed := "https://www.google.com/maps/embed/v1/place?q=place_id:abc123&key=embed-key"
	if got.EmbedURL != wantEmbed {
		t.Errorf("embed url: got %q, want %q", got.EmbedURL, wantEmbed)
	}
	wantDir := "https://www.google.com/maps/dir/?api=1&destination=place_id:abc123&destination_place_id=abc123"
	if got.DirectionsURL != wantDir {
		t.Errorf("directions url: got %q, want %q", got.DirectionsURL, wantDir)
	}
}

func TestSearch_ExplicitBiasWins(t *testing.T) {
	stub := &stubSearcher{}
	svc := newTestService(stub)

	req := types.SearchRequest{
		Query: "cafe",
		Limit: 5,
		LocationBias: &types.LocationBias{
			Lat: -6.2, Lng: 106.8, RadiusM: 1500,
		},
	}
	// Coordinates from geocoding must be ignored when an explicit bias exists.
	geocoded := &types.LatLng{Lat: 51.5, Lng: -0.12}
	if _, err := svc.Search(context.Background(), req, geocoded); err != nil {
		t.Fatalf("search: %v", err)
	}

	if stub.lastReq.Location == nil {
		t.Fatal("expected location bias on provider request")
	}
	if stub.lastReq.Location.Lat != -6.2 || stub.lastReq.Location.Lng != 106.8 {
		t.Errorf("bias not used verbatim: got %+v", stub.lastReq.Location)
	}
	if stub.lastReq.Radius != 1500 {
		t.Errorf("radius: got %d, want 1500", stub.lastReq.Radius)
	}
}

func TestSearch_GeocodedCoordsUseDefaultRadius(t *testing.T) {
	stub := &stubSearcher{}
	svc := newTestService(stub)

	coords := &types.LatLng{Lat: 51.5, Lng: -0.12}
	if _, err := svc.Search(context.Background(), types.SearchRequest{Query: "pub", Limit: 5}, coords); err != nil {
		t.Fatalf("search: %v", err)
	}
	if stub.lastReq.Location == nil || stub.lastReq.Location.Lat != 51.5 {
		t.Fatalf("expected geocoded coords on provider request, got %+v", stub.lastReq.Location)
	}
	if stub.lastReq.Radius != types.DefaultBiasRadiusM {
		t.Errorf("radius: got %d, want %d", stub.lastReq.Radius, types.DefaultBiasRadiusM)
	}
}

func TestSearch_ProviderError(t *testing.T) {
	stub := &stubSearcher{err: errors.New("boom")}
	svc := newTestService(stub)

	_, err := svc.Search(context.Background(), types.SearchRequest{Query: "x", Limit: 5}, nil)
	if !errors.Is(err, ErrSearchUnavailable) {
		t.Errorf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestSearch_CuisineFoldedIntoQuery(t *testing.T) {
	stub := &stubSearcher{}
	svc := newTestService(stub)

	req := types.SearchRequest{Query: "restaurants in Jakarta", Limit: 5, Cuisine: []string{"italian"}}
	if _, err := svc.Search(context.Background(), req, nil); err != nil {
		t.Fatalf("search: %v", err)
	}
	if stub.lastReq.Query != "italian restaurants in Jakarta" {
		t.Errorf("query: got %q", stub.lastReq.Query)
	}
}
