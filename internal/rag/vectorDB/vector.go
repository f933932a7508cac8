package vectorDB

import (
	"context"

	"github.com/communitydesk/helpdesk/internal/domain/catalog"
)

// SearchFilter narrows a vector query by payload fields.
type SearchFilter struct {
	Locality string
	Category string
}

// DataProcessor is everything the pipeline needs from the vector store.
// The worker and the CLI tooling only see this interface so the qdrant
// client can be swapped for mocks in tests.
type DataProcessor interface {
	SearchServices(ctx context.Context, vector []float32, filter SearchFilter, topK int) ([]catalog.Retrieved, []string, error)

	GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, answer string) error

	EnsureCollections(ctx context.Context) error
	UpsertServices(ctx context.Context, services []catalog.Service, vectors [][]float32) error
	UpsertChunks(ctx context.Context, chunks []catalog.DocChunk, vectors [][]float32) error

	Count(ctx context.Context) (uint64, error)
	CountByCategory(ctx context.Context, category string) (uint64, error)
	ServicesByCategory(ctx context.Context, category string, limit int) ([]catalog.Service, error)
}
