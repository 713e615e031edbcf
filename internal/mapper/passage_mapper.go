package mapper

import (
	"medassist-be/internal/entity"
	"medassist-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type PassageMapper struct{}

func NewPassageMapper() *PassageMapper {
	return &PassageMapper{}
}

func (m *PassageMapper) ToEntity(p *model.Passage) *entity.Passage {
	if p == nil {
		return nil
	}
	return &entity.Passage{
		Id:         p.Id,
		Document:   p.Document,
		Embedding:  p.EmbeddingValue.Slice(),
		Source:     p.Source,
		ChunkIndex: p.ChunkIndex,
		CreatedAt:  p.CreatedAt,
	}
}

func (m *PassageMapper) ToModel(p *entity.Passage) *model.Passage {
	if p == nil {
		return nil
	}
	return &model.Passage{
		Id:             p.Id,
		Document:       p.Document,
		EmbeddingValue: pgvector.NewVector(p.Embedding),
		Source:         p.Source,
		ChunkIndex:     p.ChunkIndex,
		CreatedAt:      p.CreatedAt,
	}
}
