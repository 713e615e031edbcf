package bootstrap

import (
	"errors"
	"fmt"

	"medassist-be/internal/config"
	"medassist-be/internal/pkg/logger"
	"medassist-be/internal/repository/unitofwork"
	"medassist-be/internal/service"
	"medassist-be/pkg/embedding"
	"medassist-be/pkg/llm"
	"medassist-be/pkg/llm/factory"
	"medassist-be/pkg/rag"
	"medassist-be/pkg/translate"
	"medassist-be/pkg/vectorstore/memory"
)

// NewEmbeddingProvider builds the configured provider behind a TTL cache.
func NewEmbeddingProvider(cfg *config.Config) (embedding.EmbeddingProvider, error) {
	baseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.EmbeddingProvider == "gemini" {
		baseURL = cfg.Ai.GeminiURL
	}

	provider, err := embedding.NewProvider(embedding.Settings{
		Provider:  cfg.Ai.EmbeddingProvider,
		Model:     cfg.Ai.EmbeddingModel,
		BaseURL:   baseURL,
		APIKey:    cfg.Keys.GoogleGemini,
		Dimension: cfg.Ai.EmbeddingDimension,
	})
	if err != nil {
		return nil, err
	}
	return embedding.NewCachedProvider(provider, cfg.Ai.EmbeddingCacheTTL), nil
}

// NewVectorIndex returns the pgvector-backed index, or a process-local one for VECTOR_STORE=memory.
func NewVectorIndex(cfg *config.Config, uowFactory unitofwork.RepositoryFactory) (rag.VectorIndex, error) {
	switch cfg.Ai.VectorStore {
	case "", "pgvector":
		return service.NewPassageIndex(uowFactory), nil
	case "memory":
		return memory.NewIndex(cfg.Ai.EmbeddingDimension), nil
	default:
		return nil, fmt.Errorf("unsupported vector store: %s", cfg.Ai.VectorStore)
	}
}

// ErrEphemeralVectorStore is returned when an offline tool is pointed at a process-local index
// whose contents would vanish on exit.
var ErrEphemeralVectorStore = errors.New("vector store is process-local, set VECTOR_STORE=pgvector")

// RequirePersistentVectorStore fails unless VECTOR_STORE names the pgvector store.
func RequirePersistentVectorStore(cfg *config.Config) error {
	switch cfg.Ai.VectorStore {
	case "", "pgvector":
		return nil
	case "memory":
		return fmt.Errorf("%w (got %q)", ErrEphemeralVectorStore, cfg.Ai.VectorStore)
	default:
		return fmt.Errorf("unsupported vector store: %s", cfg.Ai.VectorStore)
	}
}

// NewPersistentVectorIndex is NewVectorIndex for offline tools: only the pgvector store is accepted.
func NewPersistentVectorIndex(cfg *config.Config, uowFactory unitofwork.RepositoryFactory) (*service.PassageIndex, error) {
	if err := RequirePersistentVectorStore(cfg); err != nil {
		return nil, err
	}
	return service.NewPassageIndex(uowFactory), nil
}

// NewIngestor builds the document ingestor. Without a provider every ingestion fails with
// rag.ErrMissingCollaborator.
func NewIngestor(cfg *config.Config, provider embedding.EmbeddingProvider, index rag.VectorIndex, log logger.ILogger) *rag.Ingestor {
	var encoder rag.Encoder
	if provider != nil {
		encoder = embedding.NewDocumentEncoder(provider)
	}
	return rag.NewIngestor(
		encoder,
		index,
		rag.IngestConfig{
			ChunkSize: cfg.Ingest.ChunkSize,
			Overlap:   cfg.Ingest.Overlap,
			BatchSize: cfg.Ingest.BatchSize,
			Dimension: cfg.Ai.EmbeddingDimension,
		},
		log,
	)
}

// NewPipeline wires retriever, generator and translator. Collaborators that cannot be built are
// left out; the pipeline then degrades or, with RAG_STRICT, refuses to start.
func NewPipeline(cfg *config.Config, provider embedding.EmbeddingProvider, index rag.VectorIndex, log logger.ILogger) (*rag.Pipeline, error) {
	var encoder rag.Encoder
	if provider != nil {
		encoder = embedding.NewQueryEncoder(provider)
	}
	retriever := rag.NewRetriever(encoder, index, rag.RetrieverConfig{
		Threshold: cfg.Ai.SimilarityThreshold,
		TopK:      cfg.Ai.TopK,
		Dimension: cfg.Ai.EmbeddingDimension,
	}, log)

	var client rag.TextGenerator
	baseURL := cfg.Ai.GeminiURL
	if cfg.Ai.LLMProvider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(factory.Settings{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  baseURL,
		APIKey:   cfg.Keys.GoogleGemini,
		Timeout:  cfg.Ai.GenerationTimeout,
	})
	if err != nil {
		log.Warn("BOOTSTRAP", "LLM provider unavailable, answers will use the fallback", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		client = llm.Completer{Provider: llmProvider}
	}

	var backend rag.TranslationBackend
	if cfg.Keys.GoogleTranslate != "" {
		backend = translate.NewGoogleTranslator(cfg.Ai.TranslateURL, cfg.Keys.GoogleTranslate, "en")
	}

	strictness := rag.FailOpen
	if cfg.Ai.Strict {
		strictness = rag.FailClosed
	}

	return rag.NewPipeline(
		retriever,
		rag.NewGenerator(client, log),
		rag.NewTranslator(backend, log),
		strictness,
		log,
	)
}
