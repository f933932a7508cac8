package gemini

import (
	"context"
	"errors"
	"sync"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/rag/llm"
	"github.com/communitydesk/helpdesk/pkg/logx"
	"google.golang.org/genai"
)

var logger *logx.Logger
var geminiClient *llmClient
var once sync.Once

type llmClient struct {
	client      *genai.Client
	modelName   string
	temperature float32
	maxTokens   int32
}

func GetGeminiClient(ctx context.Context, cfg config.LLMConfig) llm.Provider {
	once.Do(func() {
		logger = logx.NewLogger("llm_gemini")
		newGeminiClient(ctx, cfg)
	})

	if geminiClient == nil {
		return nil
	}
	return geminiClient
}

func newGeminiClient(ctx context.Context, cfg config.LLMConfig) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.GeminiAPIKey})
	if err != nil {
		logger.Error("Error creating Gemini client", "error", err)
		return
	}
	geminiClient = &llmClient{
		client:      c,
		modelName:   cfg.GeminiModel,
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
	}
	logger.Info("Gemini client created", "model", cfg.GeminiModel)
	go closeClient(ctx, geminiClient)
}

func (c *llmClient) Generate(ctx context.Context, systemInstruction string, userPrompt string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature:     &c.temperature,
		MaxOutputTokens: c.maxTokens,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(userPrompt), contentConfig)
	if err != nil {
		log.Error("Gemini generation failed", "error", err)
		return "", err
	}
	if result == nil {
		return "", errors.New("gemini returned an empty result")
	}
	return result.Text(), nil
}

func (c *llmClient) CheckAvailability(ctx context.Context) bool {
	return c.client != nil
}

func closeClient(ctx context.Context, llm *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llm.client = nil
	llm.modelName = ""
}
