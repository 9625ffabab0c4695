package mock_test

import (
	"context"
	"math"
	"testing"

	"github.com/auralabs/aura-go-sdk/memory/embedder/mock"
)

func cosine(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

func TestEmbedder_Deterministic(t *testing.T) {
	ctx := context.Background()
	e := mock.New()

	a, err := e.Embed(ctx, "hello world")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	b, err := e.Embed(ctx, "hello world")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Embedding differs at dimension %d across identical inputs", i)
		}
	}
}

func TestEmbedder_Normalized(t *testing.T) {
	e := mock.New()
	vec, err := e.Embed(context.Background(), "some text to embed")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) != e.Dimensions() {
		t.Fatalf("Embedding has %d dimensions, want %d", len(vec), e.Dimensions())
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if math.Abs(norm-1) > 1e-4 {
		t.Errorf("Embedding norm^2 = %v, want 1", norm)
	}
}

func TestEmbedder_SharedTokensScoreHigher(t *testing.T) {
	ctx := context.Background()
	e := mock.New()

	query, _ := e.Embed(ctx, "weather in berlin")
	related, _ := e.Embed(ctx, "the weather in berlin is sunny")
	unrelated, _ := e.Embed(ctx, "play some jazz music")

	if cosine(query, related) <= cosine(query, unrelated) {
		t.Errorf("Related text scored %v, unrelated %v; want related higher",
			cosine(query, related), cosine(query, unrelated))
	}
}
