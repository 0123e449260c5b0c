package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"docuchat-be/internal/constant"
	"docuchat-be/internal/dto"
	"docuchat-be/internal/entity"
	"docuchat-be/internal/pkg/logger"
	"docuchat-be/internal/pkg/serverutils"
	"docuchat-be/internal/repository/specification"
	"docuchat-be/internal/repository/unitofwork"
	"docuchat-be/pkg/docproc"
	"docuchat-be/pkg/docusaurus"
	"docuchat-be/pkg/embedding"
	"docuchat-be/pkg/vectorstore"

	"github.com/google/uuid"
)

// IDocumentService drives document ingestion: dedup by checksum, chunking,
// embedding, vector upsert and chunk mapping bookkeeping.
type IDocumentService interface {
	Ingest(ctx context.Context, req *dto.DocumentCreateRequest) (*dto.DocumentIngestResponse, error)
	IngestBulk(ctx context.Context, reqs []dto.DocumentCreateRequest) []dto.DocumentIngestResponse
	IngestDocusaurusDir(ctx context.Context, docsDir string) ([]dto.DocumentIngestResponse, error)
	Query(ctx context.Context, query string, topK int) ([]entity.ContextEntry, error)
}

type documentService struct {
	uowFactory   unitofwork.RepositoryFactory
	embedder     embedding.Provider
	vectorStore  vectorstore.VectorStore
	log          logger.ILogger
	chunkSize    int
	chunkOverlap int
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.Provider,
	vectorStore vectorstore.VectorStore,
	log logger.ILogger,
	chunkSize, chunkOverlap int,
) IDocumentService {
	if chunkSize <= 0 {
		chunkSize = docproc.DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = docproc.DefaultChunkOverlap
	}
	return &documentService{
		uowFactory:   uowFactory,
		embedder:     embedder,
		vectorStore:  vectorStore,
		log:          log,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Ingest is idempotent under unchanged content: a known checksum short
// circuits with already_exists. All relational writes of one document happen
// in a single transaction; any failure rolls the document back and removes
// already-upserted vector points best effort.
func (s *documentService) Ingest(ctx context.Context, req *dto.DocumentCreateRequest) (*dto.DocumentIngestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.DocumentRepository().FindOne(ctx, specification.ByChecksum{Checksum: req.Checksum})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.DocumentIngestResponse{
			DocumentId: existing.Id.String(),
			Status:     constant.IngestStatusAlreadyExists,
			Message:    "Document already exists in the database",
		}, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	var pointIds []string
	response, err := s.ingestInTx(ctx, uow, req, &pointIds)
	if err != nil {
		_ = uow.Rollback()
		if len(pointIds) > 0 {
			if delErr := s.vectorStore.Delete(ctx, pointIds); delErr != nil {
				s.log.Warn("document_service", "Failed to clean up vector points after rollback", map[string]interface{}{
					"error": delErr.Error(),
				})
			}
		}
		s.log.Error("document_service", "Document ingestion failed", map[string]interface{}{
			"title": req.Title,
			"error": err.Error(),
		})
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		if len(pointIds) > 0 {
			_ = s.vectorStore.Delete(ctx, pointIds)
		}
		return nil, err
	}

	return response, nil
}

func (s *documentService) ingestInTx(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.DocumentCreateRequest, pointIds *[]string) (*dto.DocumentIngestResponse, error) {
	document := &entity.Document{
		Id:         uuid.New(),
		Title:      req.Title,
		SourcePath: req.SourcePath,
		Checksum:   req.Checksum,
		Version:    1,
		Metadata: map[string]interface{}{
			"original_length": len(req.Content),
		},
	}
	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}

	chunks := docproc.ChunkDocument(document.Id, req.Title, req.SourcePath, req.Content, s.chunkSize, s.chunkOverlap)

	chunkEntities := make([]*entity.DocumentChunk, len(chunks))
	texts := make([]string, len(chunks))
	metadatas := make([]map[string]interface{}, len(chunks))
	for i, chunk := range chunks {
		chunkEntities[i] = &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: document.Id,
			ChunkOrder: chunk.Order,
			Content:    chunk.Content,
			Metadata:   chunk.Metadata(),
		}
		texts[i] = chunk.Content
		metadatas[i] = map[string]interface{}{
			"document_id": document.Id.String(),
			"chunk_order": chunk.Order,
			"source_path": chunk.SourcePath,
		}
	}

	if err := uow.DocumentChunkRepository().CreateAll(ctx, chunkEntities); err != nil {
		return nil, err
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}

	ids, err := s.vectorStore.Upsert(ctx, texts, vectors, metadatas)
	if err != nil {
		return nil, fmt.Errorf("upsert vectors: %w", err)
	}
	*pointIds = ids

	mappings := make([]*entity.ChunkMapping, len(chunkEntities))
	for i, chunk := range chunkEntities {
		mappings[i] = &entity.ChunkMapping{
			Id:      uuid.New(),
			ChunkId: chunk.Id,
			PointId: ids[i],
		}
	}
	if err := uow.ChunkMappingRepository().CreateAll(ctx, mappings); err != nil {
		return nil, err
	}

	s.log.Info("document_service", "Document ingested", map[string]interface{}{
		"document_id": document.Id.String(),
		"title":       document.Title,
		"chunks":      len(chunks),
	})

	chunksCreated := len(chunks)
	return &dto.DocumentIngestResponse{
		DocumentId:    document.Id.String(),
		Status:        constant.IngestStatusSuccess,
		ChunksCreated: &chunksCreated,
		Message:       fmt.Sprintf("Successfully ingested document with %d chunks", chunksCreated),
	}, nil
}

// IngestBulk isolates per-document failures: one bad document does not abort
// its siblings.
func (s *documentService) IngestBulk(ctx context.Context, reqs []dto.DocumentCreateRequest) []dto.DocumentIngestResponse {
	results := make([]dto.DocumentIngestResponse, 0, len(reqs))
	for i := range reqs {
		req := reqs[i]
		result, err := s.Ingest(ctx, &req)
		if err != nil {
			results = append(results, dto.DocumentIngestResponse{
				Status:  constant.IngestStatusError,
				Message: fmt.Sprintf("Failed to ingest '%s': %v", req.Title, err),
			})
			continue
		}
		results = append(results, *result)
	}
	return results
}

func (s *documentService) IngestDocusaurusDir(ctx context.Context, docsDir string) ([]dto.DocumentIngestResponse, error) {
	docs, err := docusaurus.Load(docsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, serverutils.NotFound(fmt.Sprintf("Docs directory not found: %s", docsDir))
		}
		return nil, err
	}

	reqs := make([]dto.DocumentCreateRequest, len(docs))
	for i, doc := range docs {
		reqs[i] = dto.DocumentCreateRequest{
			Title:      doc.Title,
			SourcePath: doc.SourcePath,
			Content:    doc.Content,
			Checksum:   doc.Checksum,
		}
	}
	return s.IngestBulk(ctx, reqs), nil
}

// Query is retrieval-only semantic search over the vector index.
func (s *documentService) Query(ctx context.Context, query string, topK int) ([]entity.ContextEntry, error) {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.vectorStore.Search(ctx, vector, topK)
}
