package memory

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// IngestConfig configures document ingestion.
type IngestConfig struct {
	// ChunkSize is the target chunk length in bytes. Default: 1000.
	ChunkSize int

	// ChunkOverlap is how many trailing bytes of a chunk repeat at the
	// start of the next one. Default: 200.
	ChunkOverlap int
}

// Ingestor loads plain-text documents from a directory into a semantic
// store so document-question tools can search them. Typically run once in
// the background at startup; per-file failures are logged and skipped.
type Ingestor struct {
	store  *SemanticStore
	dir    string
	config IngestConfig
}

// NewIngestor creates an ingestor for the given directory.
func NewIngestor(store *SemanticStore, dir string, config IngestConfig) *Ingestor {
	if config.ChunkSize <= 0 {
		config.ChunkSize = 1000
	}
	if config.ChunkOverlap < 0 || config.ChunkOverlap >= config.ChunkSize {
		config.ChunkOverlap = 200
	}
	return &Ingestor{store: store, dir: dir, config: config}
}

// Run ingests every .txt and .md file under the directory, synchronously.
// A missing directory is not an error; the assistant simply has no
// documents to answer from.
func (i *Ingestor) Run(ctx context.Context) error {
	entries, err := os.ReadDir(i.dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[INGEST] Documents folder not found: %s", i.dir)
			return nil
		}
		return fmt.Errorf("read documents folder: %w", err)
	}

	files, chunks := 0, 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".md":
		default:
			continue
		}

		path := filepath.Join(i.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[INGEST] Error loading file %s: %v", entry.Name(), err)
			continue
		}

		n, err := i.ingestText(ctx, entry.Name(), string(data))
		if err != nil {
			log.Printf("[INGEST] Error ingesting %s: %v", entry.Name(), err)
			continue
		}
		files++
		chunks += n
	}

	log.Printf("[INGEST] Ingested %d chunks from %d documents", chunks, files)
	return nil
}

// Start runs ingestion in a background goroutine and reports the outcome
// on the returned channel.
func (i *Ingestor) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- i.Run(ctx)
	}()
	return done
}

func (i *Ingestor) ingestText(ctx context.Context, source, text string) (int, error) {
	chunks := splitText(text, i.config.ChunkSize, i.config.ChunkOverlap)
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := i.store.AddDocument(ctx, source, chunk); err != nil {
			return 0, err
		}
	}
	return len(chunks), nil
}

// splitText chunks text to roughly size bytes with the given overlap,
// preferring to break at whitespace near the boundary.
func splitText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			chunk := strings.TrimSpace(text[start:])
			if chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		// Back up to the nearest whitespace so words stay intact.
		cut := end
		for cut > start && !isSpace(text[cut]) {
			cut--
		}
		if cut == start {
			cut = end
		}

		chunk := strings.TrimSpace(text[start:cut])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}
	return chunks
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
