package memory

import (
	"context"
	"log"
)

// Mode selects the semantic archive's lifetime, fixed at construction.
type Mode int

const (
	// SessionScoped clears semantic memory when the session ends.
	SessionScoped Mode = iota

	// Persistent keeps semantic memory across sessions; only an explicit
	// history reset clears it.
	Persistent
)

// Manager is the single facade combining the recency and relevance signals
// for the orchestration driver. Writes go to the session buffer always and
// to the semantic store best-effort; a semantic failure never surfaces to
// the caller.
type Manager struct {
	history  *SessionHistory
	semantic *SemanticStore
	mode     Mode
}

// NewManager creates a manager over the given semantic store.
func NewManager(semantic *SemanticStore, mode Mode) *Manager {
	return &Manager{
		history:  NewSessionHistory(),
		semantic: semantic,
		mode:     mode,
	}
}

// Mode returns the memory mode chosen at construction.
func (m *Manager) Mode() Mode { return m.mode }

// AddMessage records one completed exchange in both stores. The semantic
// write is best-effort: a provider failure is logged and the session
// continues without that entry.
func (m *Manager) AddMessage(ctx context.Context, userText, assistantText string) {
	m.history.AddMessage(userText, assistantText)

	if err := m.semantic.AddConversation(ctx, userText, assistantText, nil); err != nil {
		log.Printf("[MEMORY] Failed to archive exchange: %v", err)
	}
}

// History returns the last maxMessages turns of the current session;
// maxMessages <= 0 returns all.
func (m *Manager) History(maxMessages int) string {
	return m.history.History(maxMessages)
}

// RelevantContext returns semantically relevant past exchanges for the
// query. Failures and empty stores yield the NoContext sentinel.
func (m *Manager) RelevantContext(ctx context.Context, query string, k int) ContextResult {
	return m.semantic.RelevantContext(ctx, query, k)
}

// ResetHistory clears the session buffer. In Persistent mode it also wipes
// the semantic archive; a session-scoped archive is left for EndSession.
func (m *Manager) ResetHistory() {
	m.history.Reset()

	if m.mode == Persistent {
		if err := m.semantic.Reset(); err != nil {
			log.Printf("[MEMORY] Failed to reset semantic memory: %v", err)
			return
		}
		log.Printf("[MEMORY] Semantic memory has been reset")
	}
}

// EndSession clears the session buffer. In SessionScoped mode it also wipes
// the semantic archive; a persistent archive survives the session.
func (m *Manager) EndSession() {
	m.history.Reset()

	if m.mode == SessionScoped {
		if err := m.semantic.Reset(); err != nil {
			log.Printf("[MEMORY] Failed to clear semantic memory on session end: %v", err)
			return
		}
		log.Printf("[MEMORY] Session ended, semantic memory cleared")
	}
}
