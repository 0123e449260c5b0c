package controller

import (
	"docuchat-be/internal/dto"
	"docuchat-be/internal/pkg/serverutils"
	"docuchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIngestController interface {
	RegisterRoutes(r fiber.Router)
	IngestDocuments(ctx *fiber.Ctx) error
	IngestDocusaurus(ctx *fiber.Ctx) error
	Query(ctx *fiber.Ctx) error
}

type ingestController struct {
	documentService service.IDocumentService
}

func NewIngestController(documentService service.IDocumentService) IIngestController {
	return &ingestController{
		documentService: documentService,
	}
}

func (c *ingestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ingest/v1")
	h.Post("documents", c.IngestDocuments)
	h.Post("docusaurus", c.IngestDocusaurus)
	h.Post("query", c.Query)
}

func (c *ingestController) IngestDocuments(ctx *fiber.Ctx) error {
	var req dto.IngestDocumentsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	results := c.documentService.IngestBulk(ctx.Context(), req.Documents)

	return ctx.JSON(serverutils.SuccessResponse("Success ingest documents", dto.BulkIngestResponse{
		Results: results,
	}))
}

func (c *ingestController) IngestDocusaurus(ctx *fiber.Ctx) error {
	var req dto.IngestDocusaurusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	results, err := c.documentService.IngestDocusaurusDir(ctx.Context(), req.DocsDir)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest docusaurus docs", dto.BulkIngestResponse{
		Results: results,
	}))
}

func (c *ingestController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	results, err := c.documentService.Query(ctx.Context(), req.Query, req.TopK)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success query documents", dto.QueryResponse{
		Results: results,
	}))
}
