package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Metadata keys used by the semantic store.
const (
	metaKind        = "kind"
	metaUserMessage = "user_message"
	metaAIMessage   = "ai_message"
	metaContext     = "context"
	metaSource      = "source"
	metaText        = "text"
)

// SemanticStore is the durable, similarity-searchable archive of past
// exchanges and ingested documents. It composes an Embedder and an Index;
// entries get monotonically increasing integer ids so that restarts resume
// the sequence and equal-similarity results keep insertion order.
type SemanticStore struct {
	index    Index
	embedder Embedder

	mu     sync.Mutex
	nextID int
}

// NewSemanticStore creates a store over the given index and embedder.
// The id sequence resumes from the number of entries already persisted.
func NewSemanticStore(index Index, embedder Embedder) *SemanticStore {
	return &SemanticStore{
		index:    index,
		embedder: embedder,
		nextID:   index.Count() + 1,
	}
}

// canonicalTurn renders the exchange text that gets embedded.
func canonicalTurn(userText, assistantText string) string {
	return fmt.Sprintf("User: %s\nAI: %s", userText, assistantText)
}

// AddConversation archives one exchange. The canonical rendering
// "User: {u}\nAI: {a}" is embedded and stored with the turn's metadata.
func (s *SemanticStore) AddConversation(ctx context.Context, userText, assistantText string, extra map[string]string) error {
	contextJSON := "{}"
	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			contextJSON = string(b)
		}
	}

	return s.add(ctx, canonicalTurn(userText, assistantText), map[string]string{
		metaKind:        string(KindConversation),
		metaUserMessage: userText,
		metaAIMessage:   assistantText,
		metaContext:     contextJSON,
	})
}

// AddDocument archives one ingested document chunk.
func (s *SemanticStore) AddDocument(ctx context.Context, source, text string) error {
	return s.add(ctx, text, map[string]string{
		metaKind:   string(KindDocument),
		metaSource: source,
		metaText:   text,
	})
}

func (s *SemanticStore) add(ctx context.Context, text string, metadata map[string]string) error {
	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	if err := s.index.Upsert(ctx, strconv.Itoa(id), embedding, metadata); err != nil {
		return fmt.Errorf("upsert entry %d: %w", id, err)
	}
	s.nextID++
	return nil
}

// Search embeds the query and returns up to min(k, Count) records sorted by
// descending similarity; equal scores fall back to insertion order
// (earlier id wins).
func (s *SemanticStore) Search(ctx context.Context, query string, k int) ([]Record, error) {
	count := s.index.Count()
	if k > count {
		k = count
	}
	if k <= 0 {
		return nil, nil
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.index.Query(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	records := make([]Record, 0, len(hits))
	for _, hit := range hits {
		rec, err := recordFromHit(hit)
		if err != nil {
			log.Printf("[MEMORY] Skipping malformed entry %s: %v", hit.ID, err)
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

// RelevantContext wraps Search and formats the matches for prompt
// injection. It never fails: an empty store, a provider error, or zero
// matches all yield the NoContext sentinel.
func (s *SemanticStore) RelevantContext(ctx context.Context, query string, k int) ContextResult {
	records, err := s.Search(ctx, query, k)
	if err != nil {
		log.Printf("[MEMORY] Relevant-context lookup failed: %v", err)
		return NoContext
	}
	if len(records) == 0 {
		return NoContext
	}

	var b strings.Builder
	b.WriteString("Previous relevant conversations:\n\n")
	for _, rec := range records {
		switch rec.Kind {
		case KindDocument:
			fmt.Fprintf(&b, "[%s]\n%s\n\n", rec.Source, rec.Text)
		default:
			fmt.Fprintf(&b, "User: %s\nAI: %s\n\n", rec.UserText, rec.AssistantText)
		}
	}
	return ContextResult{Found: true, Text: strings.TrimSpace(b.String())}
}

// Count returns the number of archived entries.
func (s *SemanticStore) Count() int {
	return s.index.Count()
}

// Reset deletes all entries and restarts the id sequence. Idempotent:
// resetting an empty store is a no-op that leaves it empty.
func (s *SemanticStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Reset(); err != nil {
		return fmt.Errorf("reset index: %w", err)
	}
	s.nextID = 1
	return nil
}

func recordFromHit(hit Hit) (Record, error) {
	id, err := strconv.Atoi(hit.ID)
	if err != nil {
		return Record{}, fmt.Errorf("non-numeric id %q", hit.ID)
	}

	rec := Record{
		ID:    id,
		Kind:  RecordKind(hit.Metadata[metaKind]),
		Score: hit.Similarity,
	}

	switch rec.Kind {
	case KindDocument:
		rec.Source = hit.Metadata[metaSource]
		rec.Text = hit.Metadata[metaText]
	case KindConversation, "":
		rec.Kind = KindConversation
		rec.UserText = hit.Metadata[metaUserMessage]
		rec.AssistantText = hit.Metadata[metaAIMessage]
		rec.Context = map[string]string{}
		if raw := hit.Metadata[metaContext]; raw != "" && raw != "{}" {
			if err := json.Unmarshal([]byte(raw), &rec.Context); err != nil {
				return Record{}, fmt.Errorf("decode context: %w", err)
			}
		}
	default:
		return Record{}, fmt.Errorf("unknown record kind %q", rec.Kind)
	}

	return rec, nil
}
