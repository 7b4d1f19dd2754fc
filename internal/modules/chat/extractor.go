// README: Natural-language → structured search request extraction.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"waypoint/internal/ai"
	"waypoint/internal/types"
)

const extractorPrompt = `You convert a user's request into a structured place search query.
Reply with JSON ONLY, no prose, exactly this shape:
{
  "search_request": {
    "query": "string, the textual search query",
    "limit": "int 1-20, omit when the user gives no count",
    "min_rating": "float 1-5 or null",
    "open_now": "bool or null",
    "location_name": "string or null, the place/city/area the user names",
    "sort_by": "\"rating\" | \"distance\" | null",
    "place_types": "[string] or null",
    "cuisine": "[string] or null",
    "location_bias": "{\"lat\": float, \"lng\": float, \"radius_m\": int} or null"
  },
  "explanation": "one short sentence describing how you read the request"
}

Examples:
User: Find good restaurants in Jakarta
{"search_request":{"query":"restaurants in Jakarta","min_rating":4,"location_name":"Jakarta"},"explanation":"Restaurant search in Jakarta with a quality filter."}

User: any cheap sushi spots open right now near me? top 3 only
{"search_request":{"query":"sushi","limit":3,"open_now":true,"cuisine":["sushi"]},"explanation":"Three currently open sushi places near the user."}

User: closest pharmacy to the office
{"search_request":{"query":"pharmacy","sort_by":"distance","place_types":["pharmacy"]},"explanation":"Nearest pharmacy, sorted by distance."}`

// queryMaxChars bounds the repaired query taken from the raw message.
const queryMaxChars = 50

// Extractor turns a free-text request into a SearchRequest via one
// constrained gateway call.
type Extractor struct {
	provider ai.Provider
}

func NewExtractor(provider ai.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// extractorReply is the designated envelope the model must produce.
type extractorReply struct {
	SearchRequest *types.SearchRequest `json:"search_request"`
	Explanation   string               `json:"explanation"`
}

// Extract parses message (optionally hinted with locationContext) into a
// normalized SearchRequest. Gateway and parse failures are reported as
// ErrExtractionFailed, never silently defaulted.
func (e *Extractor) Extract(ctx context.Context, message, locationContext string) (Extraction, error) {
	content := message
	if locationContext != "" {
		content = fmt.Sprintf("%s\n\n(location context: %s)", message, locationContext)
	}

	reply, err := e.provider.Complete(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: extractorPrompt},
		{Role: ai.RoleUser, Content: content},
	})
	if err != nil {
		return Extraction{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	clean := ai.CleanJSONString(reply)
	var parsed extractorReply
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return Extraction{}, fmt.Errorf("%w: invalid model output: %v (raw: %s)", ErrExtractionFailed, err, clean)
	}
	if parsed.SearchRequest == nil {
		return Extraction{}, fmt.Errorf("%w: model output missing search_request (raw: %s)", ErrExtractionFailed, clean)
	}

	req := *parsed.SearchRequest
	req.Query = repairQuery(req.Query, message)
	req.Normalize()

	return Extraction{Request: req, Explanation: parsed.Explanation}, nil
}

// repairQuery substitutes an absent query with a prefix of the trimmed
// original message, or the literal "places" when that is empty too.
func repairQuery(query, message string) string {
	query = strings.TrimSpace(query)
	if query != "" {
		return query
	}
	trimmed := []rune(strings.TrimSpace(message))
	if len(trimmed) == 0 {
		return "places"
	}
	if len(trimmed) > queryMaxChars {
		trimmed = trimmed[:queryMaxChars]
	}
	return string(trimmed)
}
