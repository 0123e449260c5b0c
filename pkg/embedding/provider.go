package embedding

import "context"

// Provider maps text to fixed-dimension vectors. Implementations must be
// deterministic: identical input always yields an identical vector, which is
// what makes re-ingestion idempotent and retrieval testable.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}
