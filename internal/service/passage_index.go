package service

import (
	"context"
	"strconv"
	"time"

	"medassist-be/internal/entity"
	"medassist-be/internal/repository/specification"
	"medassist-be/internal/repository/unitofwork"
	"medassist-be/pkg/rag"
)

// PassageIndex exposes the pgvector passage table as a rag.VectorIndex.
type PassageIndex struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPassageIndex(uowFactory unitofwork.RepositoryFactory) *PassageIndex {
	return &PassageIndex{uowFactory: uowFactory}
}

func (p *PassageIndex) Upsert(ctx context.Context, id string, vector []float32, metadata rag.Metadata) error {
	return p.UpsertBatch(ctx, []rag.IndexItem{{ID: id, Vector: vector, Metadata: metadata}})
}

func (p *PassageIndex) UpsertBatch(ctx context.Context, items []rag.IndexItem) error {
	if len(items) == 0 {
		return nil
	}

	passages := make([]*entity.Passage, 0, len(items))
	now := time.Now()
	for _, item := range items {
		chunk, _ := strconv.Atoi(item.Metadata[rag.MetadataChunk])
		passages = append(passages, &entity.Passage{
			Id:         item.ID,
			Document:   item.Metadata[rag.MetadataText],
			Embedding:  item.Vector,
			Source:     item.Metadata[rag.MetadataSource],
			ChunkIndex: chunk,
			CreatedAt:  now,
		})
	}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	return uow.PassageRepository().UpsertBulk(ctx, passages)
}

func (p *PassageIndex) Query(ctx context.Context, vector []float32, topK int) ([]rag.Match, error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.PassageRepository().SearchSimilarWithScore(ctx, vector, topK)
	if err != nil {
		return nil, err
	}

	matches := make([]rag.Match, 0, len(scored))
	for _, s := range scored {
		matches = append(matches, rag.Match{
			ID:          s.Passage.Id,
			PassageText: s.Passage.Document,
			Score:       s.Similarity,
		})
	}
	return matches, nil
}

func (p *PassageIndex) CountSource(ctx context.Context, source string) (int64, error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)
	return uow.PassageRepository().Count(ctx, specification.BySource{Source: source})
}
