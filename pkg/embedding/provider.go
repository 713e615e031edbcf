package embedding

import (
	"context"
	"fmt"
)

const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)
}

type Settings struct {
	Provider  string
	Model     string
	BaseURL   string
	APIKey    string
	Dimension int
}

func NewProvider(s Settings) (EmbeddingProvider, error) {
	switch s.Provider {
	case "ollama":
		return NewOllamaProvider(s.BaseURL, s.Model), nil
	case "gemini":
		if s.APIKey == "" {
			return nil, fmt.Errorf("gemini embedding provider requires an API key")
		}
		return NewGeminiProvider(s.BaseURL, s.APIKey, s.Model, s.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", s.Provider)
	}
}
