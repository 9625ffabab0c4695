// Package memory provides the assistant's conversational memory: an exact
// recency window for the current session and a similarity-searchable archive
// of past exchanges.
//
// Architecture:
//   - SessionHistory: in-memory ordered log of the current session's turns
//   - SemanticStore: embeds exchanges and archives them in a vector index
//   - Manager: facade combining both behind one context-retrieval interface
//   - Index: vector storage backend (chromem-go for the local SDK)
//   - Embedder: text-to-vector conversion (ONNX locally, API in production)
//
// Semantic memory is best-effort: embedding or index failures are logged
// and the conversation continues without augmentation. Expected
// absence ("no relevant context") is a result value, never an error.
//
// The Manager runs in one of two modes fixed at construction. SessionScoped
// clears the semantic archive when the session ends; Persistent keeps it
// across sessions and clears it only on an explicit history reset.
package memory
