package ollamaEmbedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/rag/embedding"
	"github.com/communitydesk/helpdesk/pkg/logx"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var logger *logx.Logger
var once sync.Once
var embeddingClient *client

// client talks to a local Ollama instance through its OpenAI-compatible
// /v1 surface, so the same SDK covers both hosted and local embeddings.
type client struct {
	ai    openai.Client
	model string
}

func GetOllamaEmbeddingClient(ctx context.Context, baseURL string, modelName string) embedding.Embedder {
	once.Do(func() {
		logger = logx.NewLogger("ollama_embedding")
		embeddingClient = &client{
			ai: openai.NewClient(
				option.WithBaseURL(baseURL+"/v1"),
				// Ollama ignores the key but the SDK requires one
				option.WithAPIKey("ollama"),
			),
			model: modelName,
		}
		logger.Info("Ollama embedding client created", "model", modelName)
	})

	if embeddingClient == nil {
		return nil
	}
	return &client{ai: embeddingClient.ai, model: embeddingClient.model}
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// BatchEmbedding embeds chunks in a single call. Ollama runs locally so
// there is no separate batch-job path; isHugeDataSet only widens logging.
func (c *client) BatchEmbedding(ctx context.Context, chunks []string, isHugeDataSet bool) ([][]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	if isHugeDataSet {
		log.Debug("embedding large batch", "chunks", len(chunks))
	}
	return c.embed(ctx, chunks)
}

func (c *client) embed(ctx context.Context, inputs []string) ([][]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	resp, err := c.ai.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: inputs,
		},
	})
	if err != nil {
		log.Error("Error getting embeddings from Ollama", "error", err)
		return nil, err
	}
	if len(resp.Data) != len(inputs) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(inputs), len(resp.Data))
	}

	results := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		results[i] = vec
	}
	return results, nil
}
