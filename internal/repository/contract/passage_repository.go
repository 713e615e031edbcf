package contract

import (
	"context"

	"medassist-be/internal/entity"
	"medassist-be/internal/repository/specification"
)

// ScoredPassage wraps Passage with its cosine similarity to the query.
type ScoredPassage struct {
	Passage    *entity.Passage
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type PassageRepository interface {
	// UpsertBulk inserts passages, overwriting text and vector of existing ids.
	UpsertBulk(ctx context.Context, passages []*entity.Passage) error
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredPassage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
