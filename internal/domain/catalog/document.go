package catalog

import "time"

type DocType string

const (
	PDF  DocType = "PDF"
	DOCX DocType = "DOCX"
	ERR  DocType = "ERROR"
)

// Document is an uploaded reference document (service directories,
// municipal circulars) that gets chunked into the knowledge base
// alongside the structured records.
type Document struct {
	ID          string    `json:"source_doc_id"`
	Name        string    `json:"doc_name"`
	IngestedAt  time.Time `json:"ingested_at"`
	ContentType DocType   `json:"content_type"`
}

type DocChunk struct {
	Doc            Document
	ChunkID        string `json:"chunk_id"`
	Content        string `json:"content"`
	PageNum        int    `json:"page_num"`
	ChunkPageOrder int    `json:"chunk_order"`
}
