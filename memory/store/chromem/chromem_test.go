package chromem_test

import (
	"context"
	"testing"

	"github.com/auralabs/aura-go-sdk/memory/store/chromem"
)

func unitVec(dim int) []float32 {
	// 4-dimensional unit vector pointing along one axis.
	vec := make([]float32, 4)
	vec[dim] = 1
	return vec
}

func TestStore_UpsertQueryCount(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New(chromem.Config{})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := store.Upsert(ctx, "1", unitVec(0), map[string]string{"label": "x"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, "2", unitVec(1), map[string]string{"label": "y"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if got := store.Count(); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}

	hits, err := store.Query(ctx, unitVec(0), 1)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("Query returned %d hits, want 1", len(hits))
	}
	if hits[0].ID != "1" {
		t.Errorf("Nearest hit id = %q, want 1", hits[0].ID)
	}
	if hits[0].Metadata["label"] != "x" {
		t.Errorf("Hit metadata = %v, want label x", hits[0].Metadata)
	}
	if hits[0].Similarity < 0.99 {
		t.Errorf("Identical-vector similarity = %v, want ~1", hits[0].Similarity)
	}
}

func TestStore_QueryClampsToSize(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New(chromem.Config{})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := store.Upsert(ctx, "1", unitVec(0), nil); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	hits, err := store.Query(ctx, unitVec(0), 5)
	if err != nil {
		t.Fatalf("Query with oversized k failed: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("Query returned %d hits, want 1", len(hits))
	}
}

func TestStore_QueryEmpty(t *testing.T) {
	store, err := chromem.New(chromem.Config{})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	hits, err := store.Query(context.Background(), unitVec(0), 3)
	if err != nil {
		t.Fatalf("Query on empty store failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("Query on empty store returned %d hits, want 0", len(hits))
	}
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New(chromem.Config{})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := store.Upsert(ctx, "1", unitVec(0), nil); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if got := store.Count(); got != 0 {
		t.Errorf("Count after reset = %d, want 0", got)
	}

	// The store stays usable after a reset.
	if err := store.Upsert(ctx, "1", unitVec(1), nil); err != nil {
		t.Fatalf("Upsert after reset failed: %v", err)
	}
	if got := store.Count(); got != 1 {
		t.Errorf("Count after re-adding = %d, want 1", got)
	}
}

func TestStore_PersistenceReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := chromem.New(chromem.Config{Path: dir})
	if err != nil {
		t.Fatalf("Failed to create persistent store: %v", err)
	}
	if err := store.Upsert(ctx, "1", unitVec(0), map[string]string{"label": "x"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	reopened, err := chromem.New(chromem.Config{Path: dir})
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	if got := reopened.Count(); got != 1 {
		t.Fatalf("Count after reload = %d, want 1", got)
	}

	hits, err := reopened.Query(ctx, unitVec(0), 1)
	if err != nil {
		t.Fatalf("Query after reload failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Metadata["label"] != "x" {
		t.Errorf("Reloaded hit = %+v, want id 1 with label x", hits)
	}
}
