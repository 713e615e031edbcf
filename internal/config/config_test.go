package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RAG_SIMILARITY_THRESHOLD", "")
	t.Setenv("RAG_TOP_K", "")

	cfg := Load()

	assert.Equal(t, 0.75, cfg.Ai.SimilarityThreshold)
	assert.Equal(t, 5, cfg.Ai.TopK)
	assert.Equal(t, 384, cfg.Ai.EmbeddingDimension)
	assert.Equal(t, 30*time.Second, cfg.Ai.GenerationTimeout)
	assert.Equal(t, 500, cfg.Ingest.ChunkSize)
	assert.Equal(t, 50, cfg.Ingest.Overlap)
	assert.False(t, cfg.Ai.Strict)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RAG_SIMILARITY_THRESHOLD", "0.8")
	t.Setenv("RAG_STRICT", "yes")
	t.Setenv("LLM_TIMEOUT", "10s")
	t.Setenv("EMBEDDING_DIMENSION", "not-a-number")

	cfg := Load()

	assert.Equal(t, 0.8, cfg.Ai.SimilarityThreshold)
	assert.True(t, cfg.Ai.Strict)
	assert.Equal(t, 10*time.Second, cfg.Ai.GenerationTimeout)
	assert.Equal(t, 384, cfg.Ai.EmbeddingDimension)
}
