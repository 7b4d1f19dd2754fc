// README: Natural-language response synthesis with deterministic fallbacks.
package chat

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"waypoint/internal/ai"
	"waypoint/internal/types"
)

const personaPrompt = `You are a helpful and friendly AI assistant. Respond naturally to the user's message in English. Keep your responses conversational, helpful, and engaging.`

const searchSummaryPrompt = `You summarize place search outcomes for a chat UI.
Write 2-3 sentences: state how many places were found and call out notable attributes (area, ratings). Do not invent place names or details you were not given.`

// fallbackApology is the fixed conversational reply when the gateway is down.
// The pipeline must always produce some user-visible text.
const fallbackApology = "Sorry, I'm having trouble responding. Please try again."

// Synthesizer converts structured outcomes back into natural language.
type Synthesizer struct {
	provider ai.Provider
	log      *logrus.Logger
}

func NewSynthesizer(provider ai.Provider, log *logrus.Logger) *Synthesizer {
	return &Synthesizer{provider: provider, log: log}
}

// SearchSummary produces 2-3 sentences about a search outcome. On gateway
// failure it falls back to a templated sentence referencing the result count.
func (s *Synthesizer) SearchSummary(ctx context.Context, message, query, location string, count int) string {
	detail := fmt.Sprintf("User asked: %q\nSearch query: %q\nResults found: %d", message, query, count)
	if location != "" {
		detail += fmt.Sprintf("\nLocation: %s", location)
	}

	reply, err := s.provider.Complete(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: searchSummaryPrompt},
		{Role: ai.RoleUser, Content: detail},
	})
	if err == nil && reply != "" {
		return reply
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("search summary gateway failed, using template")
	}

	if count == 0 {
		return fmt.Sprintf("I couldn't find any places for %q. Try rephrasing or broadening the search.", query)
	}
	if location != "" {
		return fmt.Sprintf("I found %d places for %q near %s.", count, query, location)
	}
	return fmt.Sprintf("I found %d places for %q.", count, query)
}

// Conversational answers an ordinary chat turn with the persona prompt and
// the bounded history. It never propagates a provider error to the caller.
func (s *Synthesizer) Conversational(ctx context.Context, message string, history []types.ChatTurn) string {
	msgs := []ai.Message{{Role: ai.RoleSystem, Content: personaPrompt}}
	for _, turn := range types.BoundHistory(history) {
		msgs = append(msgs, ai.Message{Role: turn.Role, Content: turn.Content})
	}
	msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: message})

	reply, err := s.provider.Complete(ctx, msgs)
	if err != nil || reply == "" {
		if err != nil {
			s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("conversational gateway failed, using apology")
		}
		return fallbackApology
	}
	return reply
}

// FollowUpAnswer names the cached result with the highest (rating, rating
// count) tuple. Deterministic: no gateway call on this branch.
func FollowUpAnswer(outcome searchOutcome) string {
	best := outcome.Results[0]
	for _, r := range outcome.Results[1:] {
		if better(r, best) {
			best = r
		}
	}

	answer := fmt.Sprintf("From your last search for %q, %s stands out", outcome.Query, best.Name)
	if best.Rating != nil {
		answer += fmt.Sprintf(" with a %.1f rating", *best.Rating)
		if best.RatingCount != nil {
			answer += fmt.Sprintf(" across %d reviews", *best.RatingCount)
		}
	}
	answer += "."
	if best.Address != "" {
		answer += fmt.Sprintf(" You'll find it at %s.", best.Address)
	}
	return answer
}

func better(a, b types.PlaceResult) bool {
	ra, rb := ratingOrZero(a), ratingOrZero(b)
	if ra != rb {
		return ra > rb
	}
	return countOrZero(a) > countOrZero(b)
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
