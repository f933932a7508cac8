package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/communitydesk/helpdesk/internal/api"
	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/domain/jobModel"
	"github.com/communitydesk/helpdesk/internal/job"
	"github.com/communitydesk/helpdesk/internal/metrics"
	"github.com/communitydesk/helpdesk/pkg/logx"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logx.Logger
)

type JobHandler struct {
	service *job.Service
}

func InitJobHandler(jobService *job.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}

		logJH = logx.NewLogger("job_handler")
		logRH = logx.NewLogger("request_handler")
		logJH.Info("Starting job handler")
	})
}

func CreateNewJob(newJob newJobData) {
	log := logJH.With("traceId", newJob.traceId, "jobId", newJob.id)
	log.Info("To create new job")
	handlerInstance.pushToJobChannel(newJob)
	if newJob.isNewChat {
		log.Info("Create new chat")
		handlerInstance.initNewChat(newJob.chatId, newJob.traceId)
	}
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

func ValidateChatRequest(chatReq api.ChatRequest) bool {
	if handlerInstance == nil {
		return false
	}
	logJH.Debug("Validating chat id", "chatId", chatReq.ChatID)
	if chatReq.Question == "" {
		return false
	}
	if chatReq.ChatID == "" {
		return true
	}
	return handlerInstance.service.MessageStore.ValidateChatId(context.Background(), chatReq.ChatID)
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {
	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.JobType = newJob.jobType

	switch newJob.jobType {
	case jobModel.JobTypeIngestRecords:
		_job.CurrentStep = jobModel.IngestInit
		_job.JobPayload.IngestRecords = newJob.records

	case jobModel.JobTypeIngestDocument:
		_job.CurrentStep = jobModel.IngestInit
		_job.JobPayload.IngestFileName = newJob.documentName
		_job.JobPayload.IngestURL = newJob.documentSource

	default:
		_job.ChatId = newJob.chatId
		_job.JobPayload.Question = newJob.question
		_job.JobPayload.Location = newJob.location
		_job.CurrentStep = jobModel.UserQueryInit
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //blocking send so the system can't be overwhelmed
	logJH.Info("Created new job")

	//a new worker every N requests, or immediately for ingestion jobs -
	//ingestion involves batch processing against external systems which
	//might take a while. Idle workers retire on their own, so most of the
	//time a single worker is running.
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || _job.JobType != jobModel.JobTypeQuery {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Dispatching extra worker", "requestCount", accurateCount)
		h.service.DispatcherChannel <- true
	}
}

func (h *JobHandler) initNewChat(chatId string, traceId string) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	err := h.service.MessageStore.InitNewChat(ctxC, chatId)
	if err != nil {
		logJH.Error("Error initiating new chat", "chatId", chatId, "error", err)
		return
	}
}
