package memory

import "context"

// Embedder converts text to fixed-length vector embeddings.
// Implementations: mock.Embedder (testing), onnx.Embedder (local SDK),
// API-based embedders (production). Must be deterministic enough for
// stable similarity ranking; the dimension is fixed per deployment.
type Embedder interface {
	// Embed converts a single text to an embedding vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}

// Hit is one nearest-neighbor match from an Index query.
type Hit struct {
	ID         string
	Metadata   map[string]string
	Similarity float32
}

// Index is the vector storage backend contract.
// Implementations: chromem.Store (local SDK), pgvector (production).
type Index interface {
	// Upsert stores an embedding with its metadata under id.
	Upsert(ctx context.Context, id string, embedding []float32, metadata map[string]string) error

	// Query returns the k nearest entries by cosine similarity, highest
	// first. k greater than Count is the caller's error; clamp before
	// calling.
	Query(ctx context.Context, embedding []float32, k int) ([]Hit, error)

	// Count returns the number of stored entries.
	Count() int

	// Reset deletes all entries and reinitializes an empty index with the
	// same configuration. Must be idempotent.
	Reset() error
}

// RecordKind distinguishes archived exchange turns from ingested document
// chunks sharing the same store.
type RecordKind string

const (
	KindConversation RecordKind = "conversation"
	KindDocument     RecordKind = "document"
)

// Record is one retrieved semantic memory entry.
type Record struct {
	// ID is the monotonically increasing integer id, as assigned at insert.
	ID int

	Kind RecordKind

	// Conversation fields (KindConversation).
	UserText      string
	AssistantText string
	Context       map[string]string

	// Document fields (KindDocument).
	Source string
	Text   string

	// Score is the similarity score in [0, 1], higher is more relevant.
	Score float32
}

// ContextResult is the outcome of a relevant-context lookup. Absence of
// context is an expected state, not an error.
type ContextResult struct {
	// Found reports whether any relevant context was retrieved.
	Found bool

	// Text is the formatted context, ready for prompt injection. Empty
	// when Found is false.
	Text string
}

// NoContext is the sentinel returned when the store is empty, the lookup
// failed, or nothing relevant was found.
var NoContext = ContextResult{}
