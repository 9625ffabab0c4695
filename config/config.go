// Package config loads assistant settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything needed to assemble an assistant.
type Config struct {
	// AnthropicAPIKey authenticates model calls. Required.
	AnthropicAPIKey string

	// Model is the Anthropic model identifier. Empty selects the SDK default.
	Model string

	// MemoryPath is the on-disk location of the semantic archive. Empty keeps
	// memory in-process only.
	MemoryPath string

	// DocsDir is scanned for documents to ingest at startup. Empty disables
	// ingestion.
	DocsDir string

	// ListenAddr is the websocket gateway bind address, e.g. ":8765".
	// Empty disables the gateway.
	ListenAddr string

	// SessionOnly selects session-scoped semantic memory instead of the
	// persistent default.
	SessionOnly bool

	// HistoryTurns is how many recent turns feed each model call.
	HistoryTurns int

	// ContextK is how many semantic matches feed each model call.
	ContextK int
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[CONFIG] Skipping .env: %v", err)
		}
	}

	cfg := &Config{
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		Model:           os.Getenv("AURA_MODEL"),
		MemoryPath:      os.Getenv("AURA_MEMORY_PATH"),
		DocsDir:         os.Getenv("AURA_DOCS_DIR"),
		ListenAddr:      os.Getenv("AURA_LISTEN_ADDR"),
		SessionOnly:     boolEnv("AURA_SESSION_ONLY", false),
		HistoryTurns:    intEnv("AURA_HISTORY_TURNS", 10),
		ContextK:        intEnv("AURA_CONTEXT_K", 3),
	}

	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}
	return cfg, nil
}

func boolEnv(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("[CONFIG] Invalid %s=%q, using %v", key, raw, fallback)
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[CONFIG] Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}
