package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/communitydesk/helpdesk/internal/adapter"
	"github.com/communitydesk/helpdesk/internal/adapter/utils"
	"github.com/communitydesk/helpdesk/internal/api"
	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/domain/jobModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}

func processNewChatJob(request *http.Request, w http.ResponseWriter, requestData api.ChatRequest) {
	chatID := requestData.ChatID
	isNewChat := false
	if chatID == "" {
		chatID = utils.GetNewUUID()
		logRH.Debug("New chat request", "chatId", chatID)
		isNewChat = true
	}

	newJob := newJobData{
		id:        utils.GetNewUUID(),
		jobType:   jobModel.JobTypeQuery,
		chatId:    chatID,
		question:  requestData.Question,
		location:  requestData.Location,
		isNewChat: isNewChat,
		traceId:   request.Context().Value(config.TRACE_ID_KEY).(string),
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

func processNewIngestJob(request *http.Request, w http.ResponseWriter, newJob newJobData) {
	newJob.id = utils.GetNewUUID()
	newJob.traceId = request.Context().Value(config.TRACE_ID_KEY).(string)
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}
