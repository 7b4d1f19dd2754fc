// README: Intent classification (provider-backed with keyword fallback).
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"waypoint/internal/ai"
	"waypoint/internal/types"
)

const searchIntentPrompt = `You are an intent classifier for a place-search assistant.
Decide whether the user's LATEST message asks for a NEW place search (restaurants, cafes, hotels, stores, attractions or other venues).
Messages that discuss results already shown in the conversation — such as "which of these is best", "the first one", "tell me more about it" — are NOT a new search.
Answer with exactly one word: yes or no.`

const refersToPreviousPrompt = `You are an intent classifier for a place-search assistant.
Decide whether the user's LATEST message refers to place results returned earlier in this conversation — for example "which of these is the best?", "how about the second one?", "is any of them open now?".
Answer with exactly one word: yes or no.`

// Fallback keyword sets used when the gateway is unreachable or answers
// outside the yes/no token space.
var (
	searchKeywords = []string{
		"search", "find", "where", "nearby", "closest",
		"restaurant", "cafe", "coffee", "hotel", "store", "mall",
		"bar", "food", "eat", "places",
	}
	followUpKeywords = []string{
		"which of these", "which one", "the best one", "of those",
		"among them", "the first one", "the second one", "that one",
	}
)

// errAmbiguousReply marks a gateway answer outside the yes/no token space.
var errAmbiguousReply = errors.New("ambiguous classifier reply")

// decider answers one yes/no question about a message.
type decider interface {
	decide(ctx context.Context, message string, history []types.ChatTurn) (bool, error)
}

// providerDecider asks the chat-completion gateway a constrained yes/no
// question with the bounded history as context.
type providerDecider struct {
	provider ai.Provider
	prompt   string
}

func (d providerDecider) decide(ctx context.Context, message string, history []types.ChatTurn) (bool, error) {
	msgs := []ai.Message{{Role: ai.RoleSystem, Content: d.prompt}}
	for _, turn := range types.BoundHistory(history) {
		msgs = append(msgs, ai.Message{Role: turn.Role, Content: turn.Content})
	}
	msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: message})

	reply, err := d.provider.Complete(ctx, msgs)
	if err != nil {
		return false, err
	}
	folded := strings.ToLower(strings.TrimSpace(reply))
	switch {
	case strings.HasPrefix(folded, "yes"):
		return true, nil
	case strings.HasPrefix(folded, "no"):
		return false, nil
	}
	return false, errAmbiguousReply
}

// keywordDecider is the deterministic fallback: substring match against the
// lower-cased message. It never fails.
type keywordDecider struct {
	keywords []string
}

func (d keywordDecider) decide(_ context.Context, message string, _ []types.ChatTurn) (bool, error) {
	lower := strings.ToLower(message)
	for _, kw := range d.keywords {
		if strings.Contains(lower, kw) {
			return true, nil
		}
	}
	return false, nil
}

// Classifier decides whether a message starts a new search and whether it
// refers to previously returned results. Classification always terminates
// with a decision; gateway failures fall back to keyword heuristics.
type Classifier struct {
	newSearch decider
	followUp  decider
	fallbackN decider
	fallbackF decider
	log       *logrus.Logger
}

func NewClassifier(provider ai.Provider, log *logrus.Logger) *Classifier {
	return &Classifier{
		newSearch: providerDecider{provider: provider, prompt: searchIntentPrompt},
		followUp:  providerDecider{provider: provider, prompt: refersToPreviousPrompt},
		fallbackN: keywordDecider{keywords: searchKeywords},
		fallbackF: keywordDecider{keywords: followUpKeywords},
		log:       log,
	}
}

// IsSearchIntent reports whether the message requests a new place search.
func (c *Classifier) IsSearchIntent(ctx context.Context, message string, history []types.ChatTurn) bool {
	return c.run(ctx, c.newSearch, c.fallbackN, "search_intent", message, history)
}

// RefersToPrevious reports whether the message is a follow-up on an earlier
// result set.
func (c *Classifier) RefersToPrevious(ctx context.Context, message string, history []types.ChatTurn) bool {
	return c.run(ctx, c.followUp, c.fallbackF, "refers_to_previous", message, history)
}

func (c *Classifier) run(ctx context.Context, primary, fallback decider, kind, message string, history []types.ChatTurn) bool {
	got, err := primary.decide(ctx, message, history)
	if err == nil {
		return got
	}
	c.log.WithFields(logrus.Fields{"kind": kind, "error": err.Error()}).
		Warn("classifier gateway unusable, using keyword fallback")
	got, _ = fallback.decide(ctx, message, history)
	return got
}
