package ollama

import (
	"context"
	"errors"
	"sync"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/rag/llm"
	"github.com/communitydesk/helpdesk/pkg/logx"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var logger *logx.Logger
var ollamaClient *llmClient
var once sync.Once

// llmClient drives a local Ollama model through the OpenAI-compatible
// chat completions endpoint.
type llmClient struct {
	ai          openai.Client
	model       string
	temperature float64
	maxTokens   int
}

func GetOllamaClient(ctx context.Context, cfg config.LLMConfig) llm.Provider {
	once.Do(func() {
		logger = logx.NewLogger("llm_ollama")
		ollamaClient = &llmClient{
			ai: openai.NewClient(
				option.WithBaseURL(cfg.OllamaBaseURL+"/v1"),
				option.WithAPIKey("ollama"),
			),
			model:       cfg.OllamaModel,
			temperature: cfg.Temperature,
			maxTokens:   cfg.MaxTokens,
		}
		logger.Info("Ollama client created", "model", cfg.OllamaModel)
	})

	if ollamaClient == nil {
		return nil
	}
	return ollamaClient
}

func (c *llmClient) Generate(ctx context.Context, systemInstruction string, userPrompt string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	resp, err := c.ai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction),
			openai.UserMessage(userPrompt),
		},
		Temperature:         openai.Float(c.temperature),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		log.Error("Ollama generation failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("ollama returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// CheckAvailability lists models, which doubles as a liveness probe for
// the Ollama daemon.
func (c *llmClient) CheckAvailability(ctx context.Context) bool {
	_, err := c.ai.Models.List(ctx)
	if err != nil {
		logger.Error("Ollama service unavailable", "error", err)
		return false
	}
	return true
}
