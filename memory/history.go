package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Turn is one completed exchange. Immutable once created; the buffer and
// the semantic store each keep their own copy.
type Turn struct {
	UserText      string
	AssistantText string
	At            time.Time
	Context       map[string]string
}

// SessionHistory is the in-memory ordered log of the current session's
// turns. Insertion order is significant; growth is unbounded for the
// session's lifetime and cleared on session end.
type SessionHistory struct {
	mu    sync.Mutex
	turns []Turn
}

// NewSessionHistory creates an empty session history buffer.
func NewSessionHistory() *SessionHistory {
	return &SessionHistory{}
}

// AddMessage appends one exchange to the log.
func (h *SessionHistory) AddMessage(userText, assistantText string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, Turn{
		UserText:      userText,
		AssistantText: assistantText,
		At:            time.Now(),
	})
}

// History returns the last maxMessages turns rendered as alternating
// "User: …\nAI: …\n" pairs in chronological order. maxMessages <= 0
// returns all turns.
func (h *SessionHistory) History(maxMessages int) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	turns := h.turns
	if maxMessages > 0 && len(turns) > maxMessages {
		turns = turns[len(turns)-maxMessages:]
	}

	var b strings.Builder
	for _, turn := range turns {
		fmt.Fprintf(&b, "User: %s\nAI: %s\n", turn.UserText, turn.AssistantText)
	}
	return b.String()
}

// Len returns the number of stored turns.
func (h *SessionHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// Reset clears the log.
func (h *SessionHistory) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}
