package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/communitydesk/helpdesk/internal/config"
	jobmodel "github.com/communitydesk/helpdesk/internal/domain/jobModel"
	"github.com/communitydesk/helpdesk/internal/metrics"
	"github.com/communitydesk/helpdesk/pkg/logx"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		// Record total time at the end
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, 60*time.Second)
	defer cancel()
	log := logger.With("traceId", job.TraceId)
	log.Debug("Processing job", "jobId", job.Id)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	switch job.JobType {
	case jobmodel.JobTypeIngestRecords:
		job.CurrentStep = jobmodel.IngestProcessing
		job = _ragService.IngestRecords(ctx, job)

	case jobmodel.JobTypeIngestDocument:
		job.CurrentStep = jobmodel.IngestProcessing
		job = _ragService.IngestDocument(ctx, job)

	default:
		job.CurrentStep = jobmodel.HistoryCall
		job = processQuery(job, ctx, log)
		if job.Status != jobmodel.JobStatusError {
			if err := _jobService.MessageStore.TrySaveChat(ctx, job.ChatId, job.JobPayload); err != nil {
				log.Error("Failed to save chat history", "error", err)
			}
		}
	}

	job.EndTime = time.Now()
	if job.Status == jobmodel.JobStatusError {
		saveJobState(ctx, job, jobmodel.JobStatusError)
		return
	}
	saveJobState(ctx, job, jobmodel.JobStatusComplete)
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()
}

func processQuery(job jobmodel.Job, ctx context.Context, log *logx.Logger) jobmodel.Job {
	messageHistory, err := _jobService.MessageStore.GetMessageHistory(ctx, job.ChatId)
	if err != nil {
		log.Error("Failed to get message history", "error", err)
	}
	job = _ragService.ProcessRequest(ctx, job, messageHistory)
	return job
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "error", err)
	}
}
