package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/communitydesk/helpdesk/internal/adapter"
	"github.com/communitydesk/helpdesk/internal/adapter/utils"
	"github.com/communitydesk/helpdesk/internal/api"
	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/domain/catalog"
	"github.com/communitydesk/helpdesk/internal/domain/jobModel"
	"github.com/communitydesk/helpdesk/pkg/logx"
)

var logRH *logx.Logger

type newJobData struct {
	id             string
	jobType        jobModel.JobType
	chatId         string
	question       string
	location       string
	isNewChat      bool
	traceId        string
	records        []catalog.Service
	documentName   string
	documentSource string
}

// ChatHandler godoc
// @Summary      Start a new chat job
// @Description  Accepts a question, initializes a background processing job, and returns a job ID to track status.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest      true  "Question, optional location filter and chat ID"
// @Success      202      {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400      {object}  api.JobResponse      "Invalid request data or chat ID"
// @Router       /chat [post]
func ChatHandler(w http.ResponseWriter, request *http.Request) {
	if validateContext(request.Context()) {
		var requestData api.ChatRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the chat handler reader", "error", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || !ValidateChatRequest(requestData) {
			logRH.Warn("Bad chat request", "error", err, "requestData", requestData)
			WriteErrorResponse(w, http.StatusBadRequest, requestData.ChatID, "Bad Request")
			return
		}
		processNewChatJob(request, w, requestData)
		return
	}
	logRH.Warn("Invalid context by request", "remoteAddr", request.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a specific job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "The current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get status request", "urlPath", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// PostIngestHandler godoc
// @Summary      Ingest service records
// @Description  Accepts a batch of structured service records and queues a background ingestion job.
// @Tags         Ingestion
// @Accept       json
// @Produce      json
// @Param        request  body      api.IngestRequest    true  "Service records to add or update"
// @Success      202      {object}  api.InitJobResponse  "Ingestion job created"
// @Failure      400      {object}  api.JobResponse      "Empty or malformed request"
// @Router       /ingest [post]
func PostIngestHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		var requestData api.IngestRequest
		defer func(Body io.ReadCloser) {
			if err := Body.Close(); err != nil {
				logRH.Error("Couldn't close the ingest handler reader", "error", err)
			}
		}(r.Body)

		if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || len(requestData.Services) == 0 {
			logRH.Warn("Bad ingest request", "error", err)
			WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
			return
		}

		processNewIngestJob(r, w, newJobData{
			jobType: jobModel.JobTypeIngestRecords,
			records: adapter.ToServiceRecords(requestData.Services),
		})
		return
	}
	logRH.Warn("Invalid context by request", "remoteAddr", r.RemoteAddr)
}

// PostIngestDocumentHandler handles the uploading of PDF or DOCX documents for ingestion.
// @Summary      Upload a document for ingestion
// @Description  Receives a file via multipart/form-data, saves it to a temporary directory, and queues an ingestion job.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        document_name  formData  string  true  "The display name of the document"
// @Param        document       formData  file    true  "The PDF or DOCX file to upload"
// @Success      202  {object}  api.InitJobResponse  "Ingestion job created"
// @Failure      400  {object}  api.JobResponse      "Missing fields or file too large"
// @Failure      500  {object}  api.JobResponse      "Storage or write error"
// @Router       /ingest/document [post]
func PostIngestDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		targetDir, errString := getTargetDirectory()
		if errString != "" {
			logRH.Error("Couldn't get target directory", "error", errString)
			WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
			return
		}

		const maxUploadSize = 32 << 20 //32mb
		err := r.ParseMultipartForm(maxUploadSize)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		docName := r.FormValue("document_name")
		if docName == "" {
			WriteErrorResponse(w, http.StatusBadRequest, "", "document_name is required")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("document")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, docName, "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
		tempFilePath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(tempFilePath)
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, docName, "Storage error")
			return
		}
		defer destinationFileWriter.Close()

		if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, docName, "Write error")
			return
		}

		processNewIngestJob(r, w, newJobData{
			jobType:        jobModel.JobTypeIngestDocument,
			documentName:   docName,
			documentSource: tempFilePath,
		})
		return
	}
	logRH.Warn("Invalid context by request", "remoteAddr", r.RemoteAddr)
}
