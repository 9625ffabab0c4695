// Package mock provides a deterministic embedder for tests and offline
// development. No model files required.
package mock

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// Embedder generates deterministic bag-of-words embeddings: each token
// hashes to a dimension, so texts sharing words get positive cosine
// similarity and identical texts are exact matches. Not real semantics,
// but stable enough to exercise similarity ranking.
type Embedder struct {
	dimensions int
}

// New creates a mock embedder with the default dimension.
func New() *Embedder {
	return &Embedder{
		dimensions: 384, // Match all-MiniLM-L6-v2 dimensions
	}
}

// NewWithDimensions creates a mock embedder with a custom dimension.
func NewWithDimensions(dims int) *Embedder {
	return &Embedder{dimensions: dims}
}

// Embed converts text to a deterministic embedding vector.
func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embedding := make([]float32, m.dimensions)

	for _, token := range tokenize(text) {
		h := fnv.New64a()
		h.Write([]byte(token))
		hash := h.Sum64()

		dim := int(hash % uint64(m.dimensions))
		// Sign from a higher hash bit so collisions don't all point the
		// same way.
		if hash&(1<<63) != 0 {
			embedding[dim] -= 1
		} else {
			embedding[dim] += 1
		}
	}

	return normalize(embedding), nil
}

// Dimensions returns the embedding size.
func (m *Embedder) Dimensions() int {
	return m.dimensions
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:\"'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// normalize converts the embedding to a unit vector.
func normalize(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}

	norm = float32(math.Sqrt(float64(norm)))
	for i, v := range vec {
		vec[i] = v / norm
	}
	return vec
}
