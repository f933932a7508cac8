package geminiEmbedding

import (
	"context"
	"sync"
	"time"

	"github.com/communitydesk/helpdesk/internal/adapter/utils"
	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/rag/embedding"
	"github.com/communitydesk/helpdesk/pkg/logx"
	"google.golang.org/genai"
)

var logger *logx.Logger
var once sync.Once
var embeddingClient *client

type client struct {
	genAi     *genai.Client
	model     string
	dimension int32
}

func GetGeminiEmbeddingClient(ctx context.Context, modelName string, apikey string, dimension int32) embedding.Embedder {
	once.Do(func() {
		logger = logx.NewLogger("gemini_embedding")
		newGeminiEmbedder(ctx, modelName, apikey, dimension)
	})

	if embeddingClient == nil {
		return nil
	}
	return &client{genAi: embeddingClient.genAi, model: embeddingClient.model, dimension: embeddingClient.dimension}
}

func newGeminiEmbedder(ctx context.Context, modelName string, apikey string, dimension int32) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini embedding client", "error", err)
		return
	}
	embeddingClient = &client{genAi: c, model: modelName, dimension: dimension}
	logger.Info("Gemini embedding client created", "model", modelName)
	go closeClient(ctx, embeddingClient)
}

func closeClient(ctx context.Context, embeddingClient *client) {
	<-ctx.Done()
	logger.Info("Closing Gemini embedding client")
	embeddingClient.genAi = nil
	embeddingClient.model = ""
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	result, err := c.doCall(ctx, genai.Text(query))
	if err != nil {
		log.Error("Error getting embedding from Gemini", "error", err)
		return nil, err
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string, isLargeDataSet bool) ([][]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if !isLargeDataSet {
		res, err := c.doCall(ctx, getContent(chunks))
		if err != nil {
			if doRetry(err) {
				log.Debug("Rate limited, retrying in 5 seconds")
				time.Sleep(5 * time.Second)
				res, err = c.doCall(ctx, getContent(chunks))
			}
			if err != nil {
				log.Error("Error getting embeddings from Gemini", "error", err)
				return nil, err
			}
		}

		var results [][]float32
		for _, r := range res.Embeddings {
			results = append(results, r.Values)
		}
		return results, nil
	}

	// huge datasets go through the asynchronous batch job API
	batchJobName := utils.GetNewUUID()
	log = log.With("batchJobName", batchJobName, "chunks", len(chunks))

	source := genai.EmbeddingsBatchJobSource{InlinedRequests: getInlinedBatchRequests(chunks, c.dimension)}
	conf := genai.CreateEmbeddingsBatchJobConfig{DisplayName: batchJobName}
	if _, err := c.genAi.Batches.CreateEmbeddings(ctx, &c.model, &source, &conf); err != nil {
		log.Error("Error creating Gemini batch embedding job", "error", err)
		return nil, err
	}

	answer, err := c.pollForAnswer(ctx, batchJobName, log)
	if err != nil {
		return nil, err
	}
	return downloadBatchResults(answer, log), nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &c.dimension,
		TaskType:             "RETRIEVAL_DOCUMENT",
	})
}
