package controller

import (
	"context"
	"net/http"
	"testing"

	"docuchat-be/internal/constant"
	"docuchat-be/internal/dto"
	"docuchat-be/internal/entity"
	"docuchat-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDocumentService struct {
	bulkResults []dto.DocumentIngestResponse
	queryResult []entity.ContextEntry
	lastTopK    int
}

func (s *stubDocumentService) Ingest(_ context.Context, _ *dto.DocumentCreateRequest) (*dto.DocumentIngestResponse, error) {
	return &s.bulkResults[0], nil
}

func (s *stubDocumentService) IngestBulk(_ context.Context, _ []dto.DocumentCreateRequest) []dto.DocumentIngestResponse {
	return s.bulkResults
}

func (s *stubDocumentService) IngestDocusaurusDir(_ context.Context, _ string) ([]dto.DocumentIngestResponse, error) {
	return s.bulkResults, nil
}

func (s *stubDocumentService) Query(_ context.Context, _ string, topK int) ([]entity.ContextEntry, error) {
	s.lastTopK = topK
	return s.queryResult, nil
}

func newIngestTestApp(svc *stubDocumentService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewIngestController(svc).RegisterRoutes(api)
	return app
}

func TestIngestDocumentsEndpoint(t *testing.T) {
	chunks := 3
	svc := &stubDocumentService{
		bulkResults: []dto.DocumentIngestResponse{
			{DocumentId: "d1", Status: constant.IngestStatusSuccess, ChunksCreated: &chunks},
		},
	}
	app := newIngestTestApp(svc)

	resp := postJSON(t, app, "/api/ingest/v1/documents", map[string]interface{}{
		"documents": []map[string]interface{}{
			{"title": "Intro", "source_path": "intro.md", "content": "Hello.", "checksum": "abc"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	results := data["results"].([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, "success", results[0].(map[string]interface{})["status"])
}

func TestIngestDocumentsEndpointValidatesBody(t *testing.T) {
	app := newIngestTestApp(&stubDocumentService{})

	// Missing required checksum field.
	resp := postJSON(t, app, "/api/ingest/v1/documents", map[string]interface{}{
		"documents": []map[string]interface{}{
			{"title": "Intro", "source_path": "intro.md", "content": "Hello."},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIngestDocumentsEndpointRejectsEmptyList(t *testing.T) {
	app := newIngestTestApp(&stubDocumentService{})

	resp := postJSON(t, app, "/api/ingest/v1/documents", map[string]interface{}{
		"documents": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQueryEndpoint(t *testing.T) {
	svc := &stubDocumentService{
		queryResult: []entity.ContextEntry{{Id: "p1", Text: "A chunk.", Score: 0.8}},
	}
	app := newIngestTestApp(svc)

	resp := postJSON(t, app, "/api/ingest/v1/query", map[string]interface{}{
		"query": "search terms",
		"top_k": 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, svc.lastTopK)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.Len(t, data["results"], 1)
}

func TestQueryEndpointRequiresQuery(t *testing.T) {
	app := newIngestTestApp(&stubDocumentService{})

	resp := postJSON(t, app, "/api/ingest/v1/query", map[string]interface{}{"top_k": 3})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
