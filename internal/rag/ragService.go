package rag

import (
	"context"
	"errors"
	"time"

	"github.com/communitydesk/helpdesk/internal/adapter/utils"
	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/domain/jobModel"
	"github.com/communitydesk/helpdesk/internal/metrics"
	"github.com/communitydesk/helpdesk/internal/rag/embedding"
	"github.com/communitydesk/helpdesk/internal/rag/ingest"
	"github.com/communitydesk/helpdesk/internal/rag/llm"
	"github.com/communitydesk/helpdesk/internal/rag/prompt"
	"github.com/communitydesk/helpdesk/internal/rag/vectorDB"
	"github.com/communitydesk/helpdesk/pkg/logx"
)

// Service is the only surface the worker sees - it doesn't need to know the
// llm, the embedder or the vector store behind it.
type Service interface {
	ProcessRequest(ctx context.Context, job jobModel.Job, messageHistory []string) jobModel.Job
	IngestRecords(ctx context.Context, job jobModel.Job) jobModel.Job
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	retrieval   config.RetrievalConfig
	location    config.LocationConfig
	care        config.CareConfig
	logger      *logx.Logger
}

// NewService constructor
func NewService(vector vectorDB.DataProcessor, llm llm.Provider, em embedding.Embedder, cfg *config.Config) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llm,
		embedder:    em,
		retrieval:   cfg.Retrieval,
		location:    cfg.Location,
		care:        cfg.Care,
		logger:      logx.NewLogger("rag_service"),
	}
}

func (s *service) ProcessRequest(ctx context.Context, jobt jobModel.Job, messageHistory []string) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "jobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	jobt.CurrentStep = jobModel.RAGCall

	// Topic gate - off-topic questions never reach the model
	if ok, reason := s.executeTopicGateStep(inMethodLogger, &jobt); !ok {
		inMethodLogger.Info("Off-topic query rejected", "reason", reason)
		return returnOutput(jobt, prompt.OffTopicResponse(s.location, s.care), jobModel.ConfidenceLow)
	}

	// Embedding
	embeddingStep, err := s.executeEmbeddingStep(processContext, inMethodLogger, &jobt)
	if err != nil {
		return s.jobError(jobt, err, "EMBEDDING_FAILURE", true)
	}

	// Cache Check
	cachedAnswer, found := s.executeCacheCheckStep(ctx, inMethodLogger, &jobt, embeddingStep)
	if found {
		return returnOutput(jobt, cachedAnswer, jobModel.ConfidenceHigh)
	}

	// Vector DB Search
	services, snippets, err := s.executeVectorSearchStep(processContext, inMethodLogger, &jobt, embeddingStep)
	if err != nil {
		return s.jobError(jobt, err, "VECTOR_DB_FAILURE", true)
	}

	// Nothing retrieved - escalate to customer care instead of guessing
	if len(services) == 0 {
		inMethodLogger.Info("No relevant services found - escalating")
		return returnOutput(jobt, prompt.EscalationResponse(s.care), jobModel.ConfidenceLow)
	}

	confidence := gradeConfidence(services)

	// LLM Generation
	answer, err := s.executeLLMStep(processContext, inMethodLogger, &jobt, services, snippets, messageHistory)
	if err != nil {
		return s.jobError(jobt, err, "LLM_GENERATION_FAILURE", true)
	}

	// Background Cache Save. The job context gets cancelled as soon as
	// the worker finishes, so the detached write keeps the trace id but
	// not the cancellation.
	cacheContext := context.WithoutCancel(ctx)
	go func() {
		if saveErr := s.vectorDB.SaveToCache(cacheContext, utils.GetNewUUID(), embeddingStep, answer); saveErr != nil {
			s.logger.Error("Failed to save to cache", "error", saveErr)
		}
	}()

	return returnOutput(jobt, answer, confidence)
}

func (s *service) IngestRecords(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("record_ingestion", time.Since(start)) }()
	j := ingest.ProcessRecordIngestion(ctx, job, s.embedder, s.vectorDB)
	if j.Status != jobModel.JobStatusComplete {
		return s.jobError(j, errors.New("record ingestion failed"), "INGESTION_FAILURE", true)
	}
	return j
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()
	j := ingest.ProcessDocumentIngestion(ctx, job, s.embedder, s.vectorDB)
	if j.Status != jobModel.JobStatusComplete {
		return s.jobError(j, errors.New("document ingestion failed"), "INGESTION_FAILURE", true)
	}
	return j
}
