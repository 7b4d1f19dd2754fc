// README: Place search request/result types shared across modules.
package types

// Limits and defaults for search requests.
const (
	MinSearchLimit     = 1
	MaxSearchLimit     = 20
	DefaultSearchLimit = 5

	MinBiasRadiusM     = 100
	MaxBiasRadiusM     = 50000
	DefaultBiasRadiusM = 8000
)

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocationBias is a geographic hint (center + radius) used to prioritize
// results near a point. It is a bias, not a hard filter.
type LocationBias struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	RadiusM int     `json:"radius_m"`
}

// SearchRequest is a structured place search query. When LocationBias is
// present it takes precedence over LocationName-derived geocoding.
type SearchRequest struct {
	Query        string        `json:"query"`
	Limit        int           `json:"limit"`
	MinRating    *float64      `json:"min_rating,omitempty"`
	OpenNow      *bool         `json:"open_now,omitempty"`
	LocationName string        `json:"location_name,omitempty"`
	SortBy       string        `json:"sort_by,omitempty"` // "rating" | "distance"
	PlaceTypes   []string      `json:"place_types,omitempty"`
	Cuisine      []string      `json:"cuisine,omitempty"`
	LocationBias *LocationBias `json:"location_bias,omitempty"`
}

// Normalize clamps out-of-range fields to the documented defaults and bounds.
func (r *SearchRequest) Normalize() {
	if r.Limit < MinSearchLimit || r.Limit > MaxSearchLimit {
		r.Limit = DefaultSearchLimit
	}
	if r.MinRating != nil {
		if *r.MinRating < 1 {
			*r.MinRating = 1
		}
		if *r.MinRating > 5 {
			*r.MinRating = 5
		}
	}
	if r.LocationBias != nil {
		b := r.LocationBias
		if b.RadiusM < MinBiasRadiusM || b.RadiusM > MaxBiasRadiusM {
			b.RadiusM = DefaultBiasRadiusM
		}
	}
}

// PlaceResult is a normalized place candidate. EmbedURL and DirectionsURL are
// derived from PlaceID, never fetched.
type PlaceResult struct {
	Name          string   `json:"name"`
	PlaceID       string   `json:"place_id"`
	Address       string   `json:"address"`
	Rating        *float64 `json:"rating,omitempty"`
	RatingCount   *int     `json:"user_ratings_total,omitempty"`
	PriceLevel    *int     `json:"price_level,omitempty"`
	Location      *LatLng  `json:"location,omitempty"`
	OpenNow       *bool    `json:"open_now,omitempty"`
	EmbedURL      string   `json:"embed_iframe_url,omitempty"`
	DirectionsURL string   `json:"directions_url,omitempty"`
}

// Paging carries provider pagination state.
type Paging struct {
	NextPageToken *string `json:"next_page_token"`
}

// SearchResponse is the outcome of one place search.
type SearchResponse struct {
	Query   string        `json:"query"`
	Results []PlaceResult `json:"results"`
	Paging  Paging        `json:"paging"`
}
