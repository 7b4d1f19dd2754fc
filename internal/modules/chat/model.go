package chat

import (
	"errors"
	"time"

	"waypoint/internal/types"
)

// ErrExtractionFailed is returned when the gateway reply cannot be parsed
// into a search request. The raw model output is attached for diagnostics.
var ErrExtractionFailed = errors.New("search parameter extraction failed")

// Result is the outcome of one orchestrated turn.
type Result struct {
	IsSearch bool
	Query    string
	Places   []types.PlaceResult
	Response string
}

// Extraction is the structured outcome of one extractor call.
type Extraction struct {
	Request     types.SearchRequest
	Explanation string
}

// searchOutcome is the last successful search kept per token for follow-ups.
type searchOutcome struct {
	Query    string
	Results  []types.PlaceResult
	StoredAt time.Time
}
