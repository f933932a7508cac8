package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/data/store"
	"github.com/communitydesk/helpdesk/internal/domain/jobModel"
	"github.com/communitydesk/helpdesk/internal/handlers"
	"github.com/communitydesk/helpdesk/internal/job"
	"github.com/communitydesk/helpdesk/internal/rag"
	"github.com/communitydesk/helpdesk/internal/rag/embedding"
	"github.com/communitydesk/helpdesk/internal/rag/embedding/geminiEmbedding"
	"github.com/communitydesk/helpdesk/internal/rag/embedding/ollamaEmbedding"
	"github.com/communitydesk/helpdesk/internal/rag/llm"
	"github.com/communitydesk/helpdesk/internal/rag/llm/gemini"
	"github.com/communitydesk/helpdesk/internal/rag/llm/ollama"
	"github.com/communitydesk/helpdesk/internal/rag/vectorDB"
	"github.com/communitydesk/helpdesk/internal/rag/vectorDB/qdrantDB"
	"github.com/communitydesk/helpdesk/internal/server"
	"github.com/communitydesk/helpdesk/internal/worker"
	"github.com/communitydesk/helpdesk/pkg/logx"
)

// backend bundles the running services so callers can bootstrap data,
// attach a frontend, or trigger shutdown.
type backend struct {
	vector           vectorDB.DataProcessor
	embedder         embedding.Embedder
	llmProvider      llm.Provider
	gracefulShutdown chan os.Signal
	stopExecution    chan bool
	closeServices    context.CancelFunc
}

// startBackend wires every service together and launches the HTTP server
// and worker pool in the background.
func startBackend(cfg *config.Config) (*backend, error) {
	logger := logx.NewLogger("main")

	jobChannel := make(chan jobModel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel := make(chan bool, 1)
	var workerWaitGroup sync.WaitGroup

	serviceContext, closeExternalServices := context.WithCancel(context.Background())

	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		DispatcherChannel: dispatcherChannel,
		JobStore:          store.GetRedisJobStore(serviceContext, cfg.Redis),
		MessageStore:      store.GetRedisMessageStore(serviceContext, cfg.Redis),
	}
	logger.Info("Starting job service")

	if serviceConfig.JobStore == nil || serviceConfig.MessageStore == nil {
		logger.Warn("Redis stores are offline, falling back to in-memory storage")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.MessageStore = store.InitMessageStore()
	}
	jobService := job.InitJobService(serviceConfig)

	vector := qdrantDB.GetClient(serviceContext, cfg)
	embedder := newEmbedder(serviceContext, cfg)
	llmProvider := newLLMProvider(serviceContext, cfg)

	if vector == nil || embedder == nil || llmProvider == nil {
		closeExternalServices()
		logger.Debug("Available services", "VectorDB", vector != nil, "EmbeddingService", embedder != nil, "LLMProvider", llmProvider != nil)
		return nil, fmt.Errorf("one or more external services failed to initialize")
	}

	ragService := rag.NewService(vector, llmProvider, embedder, cfg)

	handlers.InitJobHandler(jobService)
	handlers.InitInfoHandlers(cfg, vector, llmProvider)

	worker.InitServices(jobService, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(cfg.API)

	return &backend{
		vector:           vector,
		embedder:         embedder,
		llmProvider:      llmProvider,
		gracefulShutdown: gracefulShutdown,
		stopExecution:    stopExecution,
		closeServices:    closeExternalServices,
	}, nil
}

func (b *backend) shutdown() {
	b.gracefulShutdown <- syscall.SIGTERM
}

func newEmbedder(ctx context.Context, cfg *config.Config) embedding.Embedder {
	if cfg.Embedding.Provider == "gemini" {
		return geminiEmbedding.GetGeminiEmbeddingClient(ctx, cfg.Embedding.GeminiModel, cfg.LLM.GeminiAPIKey, cfg.Embedding.Dimension)
	}
	return ollamaEmbedding.GetOllamaEmbeddingClient(ctx, cfg.LLM.OllamaBaseURL, cfg.Embedding.OllamaModel)
}

func newLLMProvider(ctx context.Context, cfg *config.Config) llm.Provider {
	if cfg.LLM.Provider == "gemini" {
		return gemini.GetGeminiClient(ctx, cfg.LLM)
	}
	return ollama.GetOllamaClient(ctx, cfg.LLM)
}
