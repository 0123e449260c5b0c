package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docuchat-be/internal/constant"
	"docuchat-be/internal/dto"
	"docuchat-be/internal/entity"
	"docuchat-be/internal/pkg/serverutils"
	"docuchat-be/pkg/docusaurus"
	"docuchat-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocumentFixture() (*fakeUnitOfWork, *fakeVectorStore, IDocumentService) {
	uow := newFakeUnitOfWork()
	vectorStore := &fakeVectorStore{}
	svc := NewDocumentService(
		&fakeUowFactory{uow: uow},
		embedding.NewHashProvider(16),
		vectorStore,
		nopLogger{},
		600, 50,
	)
	return uow, vectorStore, svc
}

func docRequest(title, content string) *dto.DocumentCreateRequest {
	return &dto.DocumentCreateRequest{
		Title:      title,
		SourcePath: "docs/" + title + ".md",
		Content:    content,
		Checksum:   docusaurus.Checksum(content),
	}
}

func TestIngestCreatesDocumentChunksAndMappings(t *testing.T) {
	uow, vectorStore, svc := newDocumentFixture()

	content := strings.Repeat("A sentence about configuring the sidebar. ", 30)
	result, err := svc.Ingest(context.Background(), docRequest("sidebar", content))
	require.NoError(t, err)

	assert.Equal(t, constant.IngestStatusSuccess, result.Status)
	require.NotNil(t, result.ChunksCreated)
	assert.Greater(t, *result.ChunksCreated, 1)

	assert.Len(t, uow.store.documents, 1)
	assert.Len(t, uow.store.chunks, *result.ChunksCreated)
	assert.Len(t, uow.store.mappings, *result.ChunksCreated)
	assert.Len(t, vectorStore.upsertedIds, *result.ChunksCreated)

	for i, chunk := range uow.store.chunks {
		assert.Equal(t, i, chunk.ChunkOrder)
		assert.Equal(t, uow.store.documents[0].Id, chunk.DocumentId)
		assert.Equal(t, chunk.Id, uow.store.mappings[i].ChunkId)
	}
}

func TestIngestIdempotentOnUnchangedContent(t *testing.T) {
	uow, vectorStore, svc := newDocumentFixture()

	req := docRequest("intro", "Welcome to the documentation. It explains everything.")

	first, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, constant.IngestStatusSuccess, first.Status)

	second, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, constant.IngestStatusAlreadyExists, second.Status)
	assert.Equal(t, first.DocumentId, second.DocumentId)

	assert.Len(t, uow.store.documents, 1, "re-ingestion must not duplicate rows")
	assert.Len(t, vectorStore.upserted, 1, "re-ingestion must not touch the vector store")
}

func TestIngestRollsBackOnMappingFailure(t *testing.T) {
	uow, vectorStore, svc := newDocumentFixture()
	uow.mappingCreateErr = errors.New("mapping insert failed")

	_, err := svc.Ingest(context.Background(), docRequest("broken", "Some content here."))
	require.Error(t, err)

	assert.Empty(t, uow.store.documents, "document row must be rolled back")
	assert.Empty(t, uow.store.chunks, "chunk rows must be rolled back")
	assert.Empty(t, uow.store.mappings)
	assert.ElementsMatch(t, vectorStore.upsertedIds, vectorStore.deleted,
		"orphaned vector points must be cleaned up")
}

func TestIngestRollsBackOnVectorUpsertFailure(t *testing.T) {
	uow, vectorStore, svc := newDocumentFixture()
	vectorStore.upsertErr = errors.New("qdrant unavailable")

	_, err := svc.Ingest(context.Background(), docRequest("broken", "Some content here."))
	require.Error(t, err)

	assert.Empty(t, uow.store.documents)
	assert.Empty(t, uow.store.chunks)
	assert.Empty(t, vectorStore.deleted, "nothing was upserted, nothing to clean")
}

func TestIngestFailsWhenEmbeddingUnavailable(t *testing.T) {
	uow := newFakeUnitOfWork()
	vectorStore := &fakeVectorStore{}
	svc := NewDocumentService(
		&fakeUowFactory{uow: uow},
		&failingEmbedder{err: errors.New("model offline")},
		vectorStore,
		nopLogger{},
		600, 50,
	)

	_, err := svc.Ingest(context.Background(), docRequest("doc", "Content."))
	require.Error(t, err)
	assert.Empty(t, uow.store.documents)
}

func TestIngestBulkIsolatesResults(t *testing.T) {
	uow, _, svc := newDocumentFixture()

	shared := docRequest("guide", "Install the package. Then run the server.")
	results := svc.IngestBulk(context.Background(), []dto.DocumentCreateRequest{
		*shared,
		*docRequest("other", "A different page entirely."),
		*shared, // duplicate of the first
	})

	require.Len(t, results, 3)
	assert.Equal(t, constant.IngestStatusSuccess, results[0].Status)
	assert.Equal(t, constant.IngestStatusSuccess, results[1].Status)
	assert.Equal(t, constant.IngestStatusAlreadyExists, results[2].Status)
	assert.Len(t, uow.store.documents, 2)
}

func TestIngestBulkReportsPerDocumentErrors(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewDocumentService(
		&fakeUowFactory{uow: uow},
		&failingEmbedder{err: errors.New("model offline")},
		&fakeVectorStore{},
		nopLogger{},
		600, 50,
	)

	results := svc.IngestBulk(context.Background(), []dto.DocumentCreateRequest{
		*docRequest("a", "First."),
		*docRequest("b", "Second."),
	})

	require.Len(t, results, 2)
	for _, result := range results {
		assert.Equal(t, constant.IngestStatusError, result.Status)
		assert.NotEmpty(t, result.Message)
	}
}

func TestIngestDocusaurusDir(t *testing.T) {
	_, vectorStore, svc := newDocumentFixture()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intro.md"),
		[]byte("---\ntitle: Intro\n---\n\nWelcome to the docs."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.mdx"),
		[]byte("# Setup\n\nRun the installer."), 0o644))

	results, err := svc.IngestDocusaurusDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, result := range results {
		assert.Equal(t, constant.IngestStatusSuccess, result.Status)
	}
	assert.Len(t, vectorStore.upserted, 2)
}

func TestIngestDocusaurusDirMissingDir(t *testing.T) {
	_, _, svc := newDocumentFixture()

	_, err := svc.IngestDocusaurusDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestQueryReturnsSearchResults(t *testing.T) {
	_, vectorStore, svc := newDocumentFixture()
	vectorStore.searchResult = []entity.ContextEntry{
		{Id: "p1", Text: "Docusaurus supports MDX.", Score: 0.9},
	}

	results, err := svc.Query(context.Background(), "does it support mdx?", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Docusaurus supports MDX.", results[0].Text)
	assert.Equal(t, 1, vectorStore.searchCalls)
}
