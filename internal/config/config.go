package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Vector   VectorConfig
	Ai       AIConfig
	Chunking ChunkingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type VectorConfig struct {
	Provider       string // "qdrant" or "pgvector"
	QdrantURL      string
	QdrantAPIKey   string
	CollectionName string
	Dimension      int
	TimeoutSeconds int
}

type AIConfig struct {
	EmbeddingProvider string // "hash" or "ollama"
	OllamaBaseURL     string
	OllamaEmbedModel  string
	LLMProvider       string // "groq" or "ollama"
	LLMModel          string
	GroqAPIKey        string
	LLMTimeoutSeconds int
}

type ChunkingConfig struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Vector: VectorConfig{
			Provider:       getEnv("VECTOR_STORE_PROVIDER", "qdrant"),
			QdrantURL:      getEnv("QDRANT_URL", "http://localhost:6333"),
			QdrantAPIKey:   getEnv("QDRANT_API_KEY", ""),
			CollectionName: getEnv("DOCUMENT_COLLECTION_NAME", "documents"),
			Dimension:      getEnvAsInt("VECTOR_DIMENSION", 384),
			TimeoutSeconds: getEnvAsInt("VECTOR_TIMEOUT_SECONDS", 15),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "hash"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "groq"),
			LLMModel:          getEnv("CHAT_MODEL", "llama-3.1-8b-instant"),
			GroqAPIKey:        getEnv("GROQ_API_KEY", ""),
			LLMTimeoutSeconds: getEnvAsInt("LLM_TIMEOUT_SECONDS", 60),
		},
		Chunking: ChunkingConfig{
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", 600),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", 50),
			TopK:         getEnvAsInt("RETRIEVAL_TOP_K", 5),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
