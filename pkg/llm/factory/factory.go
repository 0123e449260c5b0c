package factory

import (
	"fmt"
	"time"

	"docuchat-be/pkg/llm"
	"docuchat-be/pkg/llm/groq"
	"docuchat-be/pkg/llm/ollama"
)

// NewLLMProvider builds the configured provider. Missing credentials are a
// configuration error surfaced at startup, not at request time.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string, timeout time.Duration) (llm.LLMProvider, error) {
	switch providerType {
	case "groq":
		if apiKey == "" {
			return nil, fmt.Errorf("groq provider not configured: GROQ_API_KEY is required")
		}
		return groq.NewGroqProvider(apiKey, modelName, timeout), nil
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, modelName, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
