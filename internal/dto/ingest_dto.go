package dto

import "docuchat-be/internal/entity"

type DocumentCreateRequest struct {
	Title      string `json:"title" validate:"required"`
	SourcePath string `json:"source_path" validate:"required"`
	Content    string `json:"content" validate:"required"`
	Checksum   string `json:"checksum" validate:"required"`
}

type IngestDocumentsRequest struct {
	Documents []DocumentCreateRequest `json:"documents" validate:"required,min=1,dive"`
}

type DocumentIngestResponse struct {
	DocumentId    string `json:"document_id"`
	Status        string `json:"status"` // "success" | "already_exists" | "error"
	ChunksCreated *int   `json:"chunks_created,omitempty"`
	Message       string `json:"message"`
}

type BulkIngestResponse struct {
	Results []DocumentIngestResponse `json:"results"`
}

type IngestDocusaurusRequest struct {
	DocsDir string `json:"docs_dir" validate:"required"`
}

type QueryRequest struct {
	Query string `json:"query" validate:"required"`
	TopK  int    `json:"top_k"`
}

type QueryResponse struct {
	Results []entity.ContextEntry `json:"results"`
}
