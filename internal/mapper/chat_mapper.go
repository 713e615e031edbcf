package mapper

import (
	"medassist-be/internal/entity"
	"medassist-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ToEntity(t *model.ChatTurn) *entity.ChatTurn {
	if t == nil {
		return nil
	}
	return &entity.ChatTurn{
		Id:        t.Id,
		Username:  t.Username,
		Message:   t.Message,
		Response:  t.Response,
		Timestamp: t.Timestamp,
	}
}

func (m *ChatMapper) ToModel(t *entity.ChatTurn) *model.ChatTurn {
	if t == nil {
		return nil
	}
	return &model.ChatTurn{
		Id:        t.Id,
		Username:  t.Username,
		Message:   t.Message,
		Response:  t.Response,
		Timestamp: t.Timestamp,
	}
}

func (m *ChatMapper) ToEntities(turns []*model.ChatTurn) []*entity.ChatTurn {
	entities := make([]*entity.ChatTurn, len(turns))
	for i, t := range turns {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
