package service

import (
	"context"
	"testing"

	"medassist-be/internal/entity"
	"medassist-be/internal/repository/contract"
	"medassist-be/pkg/rag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassageIndexUpsertMapsMetadata(t *testing.T) {
	s := newStore()
	idx := NewPassageIndex(s)

	err := idx.UpsertBatch(context.Background(), []rag.IndexItem{{
		ID:     "guide.pdf:chunk-3",
		Vector: []float32{0.1, 0.2},
		Metadata: rag.Metadata{
			rag.MetadataText:   "Insulin lowers blood sugar.",
			rag.MetadataSource: "guide.pdf",
			rag.MetadataChunk:  "3",
		},
	}})
	require.NoError(t, err)

	p := s.passages["guide.pdf:chunk-3"]
	require.NotNil(t, p)
	assert.Equal(t, "Insulin lowers blood sugar.", p.Document)
	assert.Equal(t, "guide.pdf", p.Source)
	assert.Equal(t, 3, p.ChunkIndex)
	assert.Equal(t, []float32{0.1, 0.2}, p.Embedding)

	require.NoError(t, idx.Upsert(context.Background(), "guide.pdf:chunk-3", []float32{0.3, 0.4}, rag.Metadata{rag.MetadataText: "updated"}))
	assert.Len(t, s.passages, 1)
	assert.Equal(t, "updated", s.passages["guide.pdf:chunk-3"].Document)
}

func TestPassageIndexQuery(t *testing.T) {
	s := newStore()
	s.scored = []*contract.ScoredPassage{
		{Passage: &entity.Passage{Id: "a", Document: "alpha"}, Similarity: 0.9},
		{Passage: &entity.Passage{Id: "b", Document: "beta"}, Similarity: 0.8},
	}

	matches, err := NewPassageIndex(s).Query(context.Background(), []float32{1}, 1)
	require.NoError(t, err)
	assert.Equal(t, []rag.Match{{ID: "a", PassageText: "alpha", Score: 0.9}}, matches)

	s.failReads = true
	_, err = NewPassageIndex(s).Query(context.Background(), []float32{1}, 1)
	assert.ErrorIs(t, err, errDB)
}
