// README: Chat turn types shared by the chat module and HTTP transport.
package types

import "time"

// Chat roles accepted in a conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is a single user or assistant message in a conversation.
type ChatTurn struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// HistoryBound is the number of most recent turns kept when a history is
// used as model context. Older turns are dropped, not summarized.
const HistoryBound = 4

// BoundHistory returns the last HistoryBound turns of history.
func BoundHistory(history []ChatTurn) []ChatTurn {
	if len(history) <= HistoryBound {
		return history
	}
	return history[len(history)-HistoryBound:]
}
