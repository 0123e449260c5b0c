package vectorstore

import (
	"context"

	"docuchat-be/internal/entity"
)

// VectorStore is the contract the core depends on. The only persistence
// assumption is that what was upserted is searchable after the call returns.
type VectorStore interface {
	// EnsureCollection creates the collection iff absent. Idempotent.
	EnsureCollection(ctx context.Context, dimension int) error

	// Upsert stores the given texts with their vectors and payload metadata
	// and returns the point ids, generating them when needed.
	Upsert(ctx context.Context, texts []string, vectors [][]float32, metadatas []map[string]interface{}) ([]string, error)

	// Search returns up to topK entries ranked by similarity, highest first.
	Search(ctx context.Context, vector []float32, topK int) ([]entity.ContextEntry, error)

	// Delete removes the given points. Best effort cleanup path.
	Delete(ctx context.Context, ids []string) error
}
