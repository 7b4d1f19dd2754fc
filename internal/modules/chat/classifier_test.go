// README: Classifier tests (yes/no parsing + keyword fallback).
package chat

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"waypoint/internal/ai"
	"waypoint/internal/types"
)

// stubProvider is a fixed-reply test double for the chat-completion gateway.
type stubProvider struct {
	reply    string
	err      error
	calls    int
	lastMsgs []ai.Message
}

func (p *stubProvider) Complete(_ context.Context, msgs []ai.Message) (string, error) {
	p.calls++
	p.lastMsgs = msgs
	return p.reply, p.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestIsSearchIntent_ProviderAnswers(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  bool
	}{
		{"plain yes", "yes", true},
		{"capitalized yes", "Yes.", true},
		{"yes with trailing prose", "yes, this is a search", true},
		{"plain no", "no", false},
		{"capitalized no", "No", false},
		{"padded no", "  NO  ", false},
	}
	for _, tc := range cases {
		provider := &stubProvider{reply: tc.reply}
		c := NewClassifier(provider, testLogger())
		got := c.IsSearchIntent(context.Background(), "tell me something", nil)
		if got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsSearchIntent_FallbackOnGatewayError(t *testing.T) {
	provider := &stubProvider{err: errors.New("gateway down")}
	c := NewClassifier(provider, testLogger())

	cases := []struct {
		message string
		want    bool
	}{
		{"find me a good restaurant downtown", true},
		{"any coffee around here?", true},
		{"WHERE can I buy shoes", true},
		{"thanks, that was helpful", false},
		{"how are you today?", false},
	}
	for _, tc := range cases {
		got := c.IsSearchIntent(context.Background(), tc.message, nil)
		if got != tc.want {
			t.Errorf("message %q: got %v, want %v", tc.message, got, tc.want)
		}
	}
}

func TestIsSearchIntent_FallbackOnAmbiguousReply(t *testing.T) {
	provider := &stubProvider{reply: "that depends on context"}
	c := NewClassifier(provider, testLogger())

	if !c.IsSearchIntent(context.Background(), "search for a hotel in Bali", nil) {
		t.Error("keyword fallback should classify a hotel search as NewSearch")
	}
	if c.IsSearchIntent(context.Background(), "good morning!", nil) {
		t.Error("keyword fallback should classify small talk as Conversational")
	}
}

func TestIsSearchIntent_HistoryIsBounded(t *testing.T) {
	provider := &stubProvider{reply: "yes"}
	c := NewClassifier(provider, testLogger())

	history := make([]types.ChatTurn, 10)
	for i := range history {
		history[i] = types.ChatTurn{Role: types.RoleUser, Content: "turn"}
	}
	c.IsSearchIntent(context.Background(), "find a cafe", history)

	// system + bounded history + current message
	want := 1 + types.HistoryBound + 1
	if len(provider.lastMsgs) != want {
		t.Errorf("gateway saw %d messages, want %d", len(provider.lastMsgs), want)
	}
}

func TestRefersToPrevious(t *testing.T) {
	provider := &stubProvider{reply: "yes"}
	c := NewClassifier(provider, testLogger())
	if !c.RefersToPrevious(context.Background(), "which of these is best?", nil) {
		t.Error("expected provider yes to mean refers-to-previous")
	}

	down := &stubProvider{err: errors.New("gateway down")}
	c = NewClassifier(down, testLogger())
	if !c.RefersToPrevious(context.Background(), "which of these is the best one?", nil) {
		t.Error("keyword fallback should catch 'which of these'")
	}
	if c.RefersToPrevious(context.Background(), "find sushi in Osaka", nil) {
		t.Error("keyword fallback should not flag a fresh search as follow-up")
	}
}

func TestClassifierNeverPanicsWithEmptyMessage(t *testing.T) {
	provider := &stubProvider{err: errors.New("down")}
	c := NewClassifier(provider, testLogger())
	if c.IsSearchIntent(context.Background(), "", nil) {
		t.Error("empty message should classify as Conversational")
	}
}
