package embedding

import "context"

// Embedder produces vectors for queries and record batches. Batch
// callers flag huge datasets so providers can switch to their bulk path.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string, isHugeDataSet bool) ([][]float32, error)
}
