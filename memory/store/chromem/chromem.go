// Package chromem implements the memory.Index contract on chromem-go,
// a pure-Go embedded vector database with optional on-disk persistence.
package chromem

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/auralabs/aura-go-sdk/memory"
)

// Config configures the store.
type Config struct {
	// Path is the persistence directory. Empty means in-memory only.
	Path string

	// Collection is the collection name. Default: "conversations".
	Collection string
}

// Store is a chromem-go backed vector index. Cosine similarity, exact
// (flat) search, deterministic nearest-neighbor order.
type Store struct {
	db   *chromem.DB
	path string
	name string

	mu  sync.RWMutex
	col *chromem.Collection
}

// New creates a store. A persistent store reloads its entries from disk;
// an unreadable persistence directory is wiped and reinitialized empty
// rather than failing the process.
func New(cfg Config) (*Store, error) {
	if cfg.Collection == "" {
		cfg.Collection = "conversations"
	}

	db, err := openDB(cfg.Path)
	if err != nil {
		return nil, err
	}

	// Embeddings are always supplied by the caller, so no embedding func.
	col, err := db.GetOrCreateCollection(cfg.Collection, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Store{db: db, path: cfg.Path, name: cfg.Collection, col: col}, nil
}

func openDB(path string) (*chromem.DB, error) {
	if path == "" {
		return chromem.NewDB(), nil
	}

	db, err := chromem.NewPersistentDB(path, false)
	if err == nil {
		return db, nil
	}

	// Corrupted persisted state: recover by starting over empty.
	log.Printf("[CHROMEM] Persisted state unreadable, reinitializing: %v", err)
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("clear corrupted store: %w", err)
	}
	db, err = chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("reinitialize store: %w", err)
	}
	return db, nil
}

// Upsert stores an embedding with its metadata under id.
func (s *Store) Upsert(ctx context.Context, id string, embedding []float32, metadata map[string]string) error {
	s.mu.RLock()
	col := s.col
	s.mu.RUnlock()

	err := col.AddDocument(ctx, chromem.Document{
		ID:        id,
		Embedding: embedding,
		Metadata:  metadata,
	})
	if err != nil {
		return fmt.Errorf("add document: %w", err)
	}
	return nil
}

// Query returns the k nearest entries by cosine similarity, highest first.
func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]memory.Hit, error) {
	s.mu.RLock()
	col := s.col
	s.mu.RUnlock()

	// chromem rejects nResults > collection size.
	if count := col.Count(); k > count {
		k = count
	}
	if k <= 0 {
		return nil, nil
	}

	results, err := col.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}

	hits := make([]memory.Hit, 0, len(results))
	for _, result := range results {
		hits = append(hits, memory.Hit{
			ID:         result.ID,
			Metadata:   result.Metadata,
			Similarity: result.Similarity,
		})
	}
	return hits, nil
}

// Count returns the number of stored entries.
func (s *Store) Count() int {
	s.mu.RLock()
	col := s.col
	s.mu.RUnlock()
	return col.Count()
}

// Reset deletes the collection and recreates it empty with the same
// configuration. Idempotent: resetting an empty store leaves it empty.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.DeleteCollection(s.name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	col, err := s.db.GetOrCreateCollection(s.name, nil, nil)
	if err != nil {
		return fmt.Errorf("recreate collection: %w", err)
	}
	s.col = col
	return nil
}
