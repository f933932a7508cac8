package commands

import (
	"context"
	"fmt"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/rag/embedding"
	"github.com/communitydesk/helpdesk/internal/rag/vectorDB"
	"github.com/communitydesk/helpdesk/internal/rag/vectorDB/qdrantDB"
)

// connectKnowledgeBase dials Qdrant and the embedding provider for the
// offline commands that work on the knowledge base directly.
func connectKnowledgeBase(ctx context.Context, cfg *config.Config) (vectorDB.DataProcessor, embedding.Embedder, error) {
	vector := qdrantDB.GetClient(ctx, cfg)
	if vector == nil {
		return nil, nil, fmt.Errorf("could not connect to qdrant at %s:%d", cfg.Qdrant.Host, cfg.Qdrant.GrpcPort)
	}
	embedder := newEmbedder(ctx, cfg)
	if embedder == nil {
		return nil, nil, fmt.Errorf("could not initialize the %s embedding provider", cfg.Embedding.Provider)
	}
	return vector, embedder, nil
}
