package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/communitydesk/helpdesk/internal/adapter/utils"
	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/domain/catalog"
	"github.com/communitydesk/helpdesk/internal/rag/embedding"
	"github.com/communitydesk/helpdesk/internal/rag/vectorDB"
	"github.com/communitydesk/helpdesk/pkg/logx"
)

//splitter

func splitTextIntoChunks(text string, limit int, overlap int) []string {
	var chunks []string

	if len(text) <= limit {
		return []string{text}
	}

	// Separators ordered from "best" to "worst" for semantic meaning
	separators := []string{"\n\n", "\n", ". ", " ", ""}

	var splitChar string
	found := false
	for _, s := range separators {
		if strings.Contains(text, s) {
			splitChar = s
			found = true
			break
		}
	}

	if !found {
		// Hard cut if no separator found (rare)
		return []string{text[:limit]}
	}

	parts := strings.Split(text, splitChar)
	var currentChunk strings.Builder

	for _, part := range parts {
		if currentChunk.Len()+len(part)+len(splitChar) > limit {
			if currentChunk.Len() > 0 {
				chunks = append(chunks, currentChunk.String())
			}

			// Start the next chunk with the tail of the previous one
			overlapContent := ""
			if currentChunk.Len() > overlap {
				overlapContent = currentChunk.String()[currentChunk.Len()-overlap:]
			}

			currentChunk.Reset()
			currentChunk.WriteString(overlapContent)
		}

		if currentChunk.Len() > 0 && splitChar != "" {
			currentChunk.WriteString(splitChar)
		}
		currentChunk.WriteString(part)
	}

	if currentChunk.Len() > 0 {
		chunks = append(chunks, currentChunk.String())
	}

	return chunks
}

func getDocType(docPath string) catalog.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return catalog.PDF
	case ".docx", ".txt", ".rtf":
		return catalog.DOCX
	default:
		return catalog.ERR
	}
}

func extractText(url string, contentType catalog.DocType) ([]rawPage, error) {
	switch contentType {
	case catalog.PDF:
		return extractPDF(url)
	case catalog.DOCX:
		return extractDocxTxtRtf(url)
	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}

func PrepareChunks(pages []rawPage, doc catalog.Document) []catalog.DocChunk {
	var allChunks []catalog.DocChunk

	// Limits for the splitter
	const maxChunkSize = 1000 // characters
	const overlap = 150       // generous overlap helps semantic continuity

	for _, page := range pages {
		stringChunks := splitTextIntoChunks(page.Content, maxChunkSize, overlap)

		for i, text := range stringChunks {
			allChunks = append(allChunks, catalog.DocChunk{
				Doc:            doc,
				ChunkID:        utils.GetNewUUID(),
				Content:        text,
				PageNum:        page.Number,
				ChunkPageOrder: i,
			})
		}
	}

	return allChunks
}

func BatchIngestRecords(ctx context.Context, services []catalog.Service, vectorDatabase vectorDB.DataProcessor, embedder embedding.Embedder) error {
	logger = logx.NewLogger("batch_ingestion")
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	batchSize := 100

	for i := 0; i < len(services); i += batchSize {
		end := i + batchSize
		if end > len(services) {
			end = len(services)
		}

		currentBatch := services[i:end]

		texts := make([]string, 0, len(currentBatch))
		for _, svc := range currentBatch {
			texts = append(texts, svc.SearchableText())
		}

		log.Debug("Starting embedding call", "batchLength", len(currentBatch))
		vectors, err := embedder.BatchEmbedding(ctx, texts, false)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		if err = vectorDatabase.UpsertServices(ctx, currentBatch, vectors); err != nil {
			return fmt.Errorf("upserting to qdrant failed: %w", err)
		}
	}

	return nil
}

func BatchIngestChunks(ctx context.Context, chunks []catalog.DocChunk, vectorDatabase vectorDB.DataProcessor, embedder embedding.Embedder) error {
	logger = logx.NewLogger("batch_ingestion")
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	batchSize := 100
	isHugeDataSet := false

	if len(chunks) > 1000000 { //we only want to do this for a huge document
		isHugeDataSet = true
		log.Debug("Is a huge dataset")
	}

	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		currentBatch := chunks[i:end]

		var texts []string
		for _, c := range currentBatch {
			if c.Content != "" {
				texts = append(texts, c.Content)
			}
		}

		log.Debug("Starting embedding call", "batchLength", len(currentBatch), "texts", len(texts))
		vectors, err := embedder.BatchEmbedding(ctx, texts, isHugeDataSet)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		if err = vectorDatabase.UpsertChunks(ctx, currentBatch, vectors); err != nil {
			return fmt.Errorf("upserting to qdrant failed: %w", err)
		}
	}

	return nil
}
