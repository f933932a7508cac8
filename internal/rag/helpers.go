package rag

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/communitydesk/helpdesk/internal/domain/catalog"
	"github.com/communitydesk/helpdesk/internal/domain/jobModel"
	"github.com/communitydesk/helpdesk/internal/metrics"
	"github.com/communitydesk/helpdesk/internal/rag/classify"
	"github.com/communitydesk/helpdesk/internal/rag/prompt"
	"github.com/communitydesk/helpdesk/internal/rag/vectorDB"
	"github.com/communitydesk/helpdesk/pkg/logx"
)

func returnOutput(job jobModel.Job, ans string, confidence jobModel.Confidence) jobModel.Job {
	job.JobPayload.Answer = ans
	job.JobPayload.Confidence = confidence
	job.CurrentStep = jobModel.Complete
	metrics.CountAnswerConfidence(string(confidence))
	return job
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logx.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("ProcessRequest", "currentStatus", job.CurrentStep)
	return job
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

// gradeConfidence scores the retrieval quality: three strong hits with a top
// similarity above 0.7 is high, anything retrieved at all is at least medium.
func gradeConfidence(services []catalog.Retrieved) jobModel.Confidence {
	if len(services) == 0 {
		return jobModel.ConfidenceLow
	}
	if len(services) >= 3 && services[0].Similarity > 0.7 {
		return jobModel.ConfidenceHigh
	}
	return jobModel.ConfidenceMedium
}

func (s *service) executeTopicGateStep(log *logx.Logger, job *jobModel.Job) (bool, classify.Reason) {
	*job = logOutput(*job, jobModel.TopicGate, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("topic_gate", time.Since(start)) }()

	return classify.IsCommunityQuery(job.JobPayload.Question)
}

func (s *service) executeEmbeddingStep(ctx context.Context, log *logx.Logger, job *jobModel.Job) ([]float32, error) {
	*job = logOutput(*job, jobModel.EmbeddingAPICall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, job.JobPayload.Question)
}

func (s *service) executeCacheCheckStep(ctx context.Context, log *logx.Logger, job *jobModel.Job, emb []float32) (string, bool) {
	*job = logOutput(*job, jobModel.CacheCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	ans, found, _ := s.vectorDB.GetCachedAnswer(ctx, emb)
	return ans, found
}

func (s *service) executeVectorSearchStep(ctx context.Context, log *logx.Logger, job *jobModel.Job, emb []float32) ([]catalog.Retrieved, []string, error) {
	*job = logOutput(*job, jobModel.VectorDBCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	filter := vectorDB.SearchFilter{Locality: job.JobPayload.Location}
	services, snippets, err := s.vectorDB.SearchServices(ctx, emb, filter, s.retrieval.TopK)
	if err != nil {
		return nil, nil, err
	}

	// Hits below the similarity floor are noise; dropping them here means
	// an empty result escalates instead of prompting the LLM with junk.
	kept := services[:0]
	for _, svc := range services {
		if svc.Similarity >= s.retrieval.SimilarityThreshold {
			kept = append(kept, svc)
		}
	}

	job.JobPayload.Services = kept
	return kept, snippets, nil
}

func (s *service) executeLLMStep(ctx context.Context, log *logx.Logger, job *jobModel.Job, services []catalog.Retrieved, snippets []string, history []string) (string, error) {
	*job = logOutput(*job, jobModel.LLMCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	userPrompt := prompt.UserPrompt(job.JobPayload.Question, services, snippets, job.JobPayload.Location)
	if len(history) > 0 {
		userPrompt = "Previous conversation:\n" + strings.Join(history, "\n") + "\n\n" + userPrompt
	}

	answer, err := s.llmProvider.Generate(ctx, prompt.SystemInstruction(s.location), userPrompt)
	if err != nil {
		return "", err
	}
	return prompt.StripHTML(answer), nil
}
