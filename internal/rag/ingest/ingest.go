package ingest

import (
	"context"
	"os"
	"time"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/domain/catalog"
	"github.com/communitydesk/helpdesk/internal/domain/jobModel"
	"github.com/communitydesk/helpdesk/internal/rag/embedding"
	"github.com/communitydesk/helpdesk/internal/rag/vectorDB"
	"github.com/communitydesk/helpdesk/pkg/logx"
)

type rawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

var logger *logx.Logger

// ProcessRecordIngestion validates and embeds structured service records,
// then upserts them into the services collection.
func ProcessRecordIngestion(ctx context.Context, job jobModel.Job, e embedding.Embedder, vectorDatabase vectorDB.DataProcessor) jobModel.Job {
	logger = logx.NewLogger("record_ingestion")
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	records := job.JobPayload.IngestRecords
	log.Debug("Processing records", "count", len(records))

	job.CurrentStep = jobModel.IngestProcessing
	if err := vectorDatabase.EnsureCollections(ctx); err != nil {
		log.Error("Error ensuring collections", "error", err)
		job.Status = jobModel.JobStatusError
		return job
	}

	valid := make([]catalog.Service, 0, len(records))
	for _, svc := range records {
		if !svc.Validate() {
			log.Warn("Skipping invalid record", "id", svc.ID)
			continue
		}
		valid = append(valid, svc)
	}
	if len(valid) == 0 {
		log.Error("No valid records in ingest request")
		job.Status = jobModel.JobStatusError
		job.Error.Message = "No valid records to ingest"
		return job
	}

	if err := BatchIngestRecords(ctx, valid, vectorDatabase, e); err != nil {
		log.Error("Error ingesting records", "error", err)
		job.Status = jobModel.JobStatusError
		return job
	}

	job.Status = jobModel.JobStatusComplete
	return job
}

// ProcessDocumentIngestion extracts an uploaded document, chunks it and
// upserts the chunks into the knowledge base.
func ProcessDocumentIngestion(ctx context.Context, job jobModel.Job, e embedding.Embedder, vectorDatabase vectorDB.DataProcessor) jobModel.Job {
	logger = logx.NewLogger("document_ingestion")
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	docName := job.JobPayload.IngestFileName
	docPath := job.JobPayload.IngestURL

	log.Debug("Processing document", "filename", docName, "path", docPath)

	job.CurrentStep = jobModel.IngestProcessing
	if err := vectorDatabase.EnsureCollections(ctx); err != nil {
		log.Error("Error ensuring collections", "error", err)
		job.Status = jobModel.JobStatusError
		return job
	}

	docType := getDocType(docPath)
	log.Debug("Processing document", "type", docType)
	if docType == catalog.ERR {
		log.Error("Unsupported document type", "path", docPath)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Unsupported document type"
		return job
	}

	doc := catalog.Document{
		ID:          job.Id,
		Name:        docName,
		IngestedAt:  time.Now(),
		ContentType: docType,
	}

	rawPages, err := extractText(docPath, doc.ContentType)
	if err != nil {
		log.Error("Error extracting document content", "error", err)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Error extracting document content"
		return job
	}

	log.Debug("Processing document", "pages", len(rawPages))
	chunks := PrepareChunks(rawPages, doc)

	log.Debug("Processing document", "chunks", len(chunks))
	if err = BatchIngestChunks(ctx, chunks, vectorDatabase, e); err != nil {
		log.Error("Error ingesting chunks", "error", err)
		job.Status = jobModel.JobStatusError
		return job
	}

	if err = os.Remove(docPath); err != nil {
		log.Error("Error removing uploaded file", "error", err)
	}
	job.Status = jobModel.JobStatusComplete
	return job
}
