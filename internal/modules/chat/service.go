// README: Orchestrator; sequences classification, extraction, resolution, search, and synthesis.
package chat

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"waypoint/internal/ai"
	"waypoint/internal/types"
)

// Geocoder resolves a free-text place name to coordinates. nil coordinates
// mean "no match"; the search proceeds unbiased.
type Geocoder interface {
	Geocode(ctx context.Context, locationName string) (*types.LatLng, error)
}

// Searcher executes a structured query against the place index.
type Searcher interface {
	Search(ctx context.Context, req types.SearchRequest, coords *types.LatLng) (types.SearchResponse, error)
}

// Service sequences the pipeline per request:
//
//	Gated → Classifying → {Extracting → Resolving → Searching → Synthesizing}
//	                    | {RespondingConversational} → Done
//
// Every non-terminal stage has a defined fallback, so a gated request always
// reaches Done with a response; only extraction failures surface to callers.
type Service struct {
	classifier *Classifier
	extractor  *Extractor
	synth      *Synthesizer
	geocoder   Geocoder
	searcher   Searcher
	cache      *resultCache
	log        *logrus.Logger
}

func NewService(provider ai.Provider, geocoder Geocoder, searcher Searcher, log *logrus.Logger) *Service {
	return &Service{
		classifier: NewClassifier(provider, log),
		extractor:  NewExtractor(provider),
		synth:      NewSynthesizer(provider, log),
		geocoder:   geocoder,
		searcher:   searcher,
		cache:      newResultCache(),
		log:        log,
	}
}

// Respond handles one gated message for the given token and always returns a
// user-visible response unless extraction fails on the search branch.
func (s *Service) Respond(ctx context.Context, token, message string, history []types.ChatTurn) (Result, error) {
	if !s.classifier.IsSearchIntent(ctx, message, history) {
		return s.respondConversational(ctx, token, message, history), nil
	}

	ext, err := s.extractor.Extract(ctx, message, "")
	if err != nil {
		return Result{}, err
	}
	req := ext.Request

	resp, ok := s.runSearch(ctx, req)
	if ok {
		s.cache.put(token, searchOutcome{Query: req.Query, Results: resp.Results, StoredAt: time.Now()})
	}

	summary := s.synth.SearchSummary(ctx, message, req.Query, req.LocationName, len(resp.Results))
	return Result{
		IsSearch: true,
		Query:    req.Query,
		Places:   resp.Results,
		Response: summary,
	}, nil
}

// respondConversational serves the chat branch: a follow-up on cached results
// when one applies, otherwise a persona reply.
func (s *Service) respondConversational(ctx context.Context, token, message string, history []types.ChatTurn) Result {
	if s.classifier.RefersToPrevious(ctx, message, history) {
		if outcome, ok := s.cache.get(token); ok && len(outcome.Results) > 0 {
			return Result{Response: FollowUpAnswer(outcome)}
		}
	}
	return Result{Response: s.synth.Conversational(ctx, message, history)}
}

// Extract exposes the extraction stage for the structured extract endpoint.
func (s *Service) Extract(ctx context.Context, message, locationContext string) (Extraction, error) {
	return s.extractor.Extract(ctx, message, locationContext)
}

// SearchPlaces runs resolution + search for an already-structured request.
// Provider failures degrade to an empty result set.
func (s *Service) SearchPlaces(ctx context.Context, req types.SearchRequest) types.SearchResponse {
	req.Normalize()
	resp, _ := s.runSearch(ctx, req)
	return resp
}

// runSearch resolves the location bias and executes the search. The bool
// reports whether the provider answered; a degraded (empty) response is
// returned either way.
func (s *Service) runSearch(ctx context.Context, req types.SearchRequest) (types.SearchResponse, bool) {
	var coords *types.LatLng
	if req.LocationBias == nil && req.LocationName != "" {
		resolved, err := s.geocoder.Geocode(ctx, req.LocationName)
		if err != nil {
			s.log.WithFields(logrus.Fields{"location": req.LocationName, "error": err.Error()}).
				Warn("geocoding failed, searching unbiased")
		} else {
			coords = resolved
		}
	}

	resp, err := s.searcher.Search(ctx, req, coords)
	if err != nil {
		s.log.WithFields(logrus.Fields{"query": req.Query, "error": err.Error()}).
			Error("place search failed, degrading to empty result set")
		return types.SearchResponse{Query: req.Query, Results: []types.PlaceResult{}}, false
	}
	return resp, true
}

// ForgetToken drops the token's cached results, typically on revocation.
func (s *Service) ForgetToken(token string) {
	s.cache.forget(token)
}
