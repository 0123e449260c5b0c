package bootstrap

import (
	"context"
	"log"
	"time"

	"docuchat-be/internal/config"
	"docuchat-be/internal/controller"
	"docuchat-be/internal/pkg/logger"
	"docuchat-be/internal/repository/unitofwork"
	"docuchat-be/internal/service"
	"docuchat-be/pkg/embedding"
	"docuchat-be/pkg/llm/factory"
	"docuchat-be/pkg/vectorstore"
	"docuchat-be/pkg/vectorstore/pgvec"
	"docuchat-be/pkg/vectorstore/qdrant"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController   controller.IChatController
	IngestController controller.IIngestController

	// Exposed for CLI entrypoints (cmd/ingest)
	DocumentService service.IDocumentService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Embedding Provider
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
			cfg.Vector.Dimension,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewHashProvider(cfg.Vector.Dimension)
		log.Printf("[INFO] Using Embedding Provider: HASH (deterministic)")
	}
	if embeddingProvider.Dimension() != cfg.Vector.Dimension {
		log.Fatalf("[FATAL] Embedding dimension %d does not match configured vector dimension %d",
			embeddingProvider.Dimension(), cfg.Vector.Dimension)
	}
	embeddingProvider = embedding.NewCachedProvider(embeddingProvider, time.Hour)

	// 3. LLM Provider
	llmTimeout := time.Duration(cfg.Ai.LLMTimeoutSeconds) * time.Second
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GroqAPIKey,
		llmTimeout,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Vector Store
	var vectorStore vectorstore.VectorStore
	if cfg.Vector.Provider == "pgvector" {
		vectorStore = pgvec.NewStore(db, cfg.Vector.CollectionName, time.Duration(cfg.Vector.TimeoutSeconds)*time.Second)
		log.Printf("[INFO] Using Vector Store: PGVECTOR (%s)", cfg.Vector.CollectionName)
	} else {
		vectorStore = qdrant.NewStore(qdrant.Config{
			URL:        cfg.Vector.QdrantURL,
			APIKey:     cfg.Vector.QdrantAPIKey,
			Collection: cfg.Vector.CollectionName,
			Timeout:    time.Duration(cfg.Vector.TimeoutSeconds) * time.Second,
		})
		log.Printf("[INFO] Using Vector Store: QDRANT (%s)", cfg.Vector.CollectionName)
	}
	if err := vectorStore.EnsureCollection(context.Background(), cfg.Vector.Dimension); err != nil {
		log.Fatalf("[FATAL] Failed to ensure vector collection: %v", err)
	}

	// 5. Services
	documentService := service.NewDocumentService(
		uowFactory,
		embeddingProvider,
		vectorStore,
		sysLogger,
		cfg.Chunking.ChunkSize,
		cfg.Chunking.ChunkOverlap,
	)
	chatService := service.NewChatService(
		uowFactory,
		embeddingProvider,
		vectorStore,
		llmProvider,
		sysLogger,
		cfg.Chunking.TopK,
		llmTimeout,
	)

	// 6. Controllers
	return &Container{
		ChatController:   controller.NewChatController(chatService),
		IngestController: controller.NewIngestController(documentService),
		DocumentService:  documentService,
		Logger:           sysLogger,
	}
}
