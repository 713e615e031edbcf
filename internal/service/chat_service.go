package service

import (
	"context"
	"strings"
	"time"

	"medassist-be/internal/dto"
	"medassist-be/internal/entity"
	"medassist-be/internal/pkg/logger"
	"medassist-be/internal/repository/unitofwork"
	"medassist-be/pkg/rag"

	"github.com/google/uuid"
)

// Answerer is the answer pipeline as seen by the chat service.
type Answerer interface {
	Answer(ctx context.Context, question, language string) rag.AnswerResult
}

type IChatService interface {
	Ask(ctx context.Context, username string, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	answerer   Answerer
	logger     logger.ILogger
	now        func() time.Time
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, answerer Answerer, log logger.ILogger) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		answerer:   answerer,
		logger:     log,
		now:        time.Now,
	}
}

// Ask answers and records the turn. A failed write is logged; the answer is still returned.
func (s *chatService) Ask(ctx context.Context, username string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	question := strings.TrimSpace(req.Query)
	result := s.answerer.Answer(ctx, question, req.Language)

	if !result.Rejected {
		turn := &entity.ChatTurn{
			Id:        uuid.New(),
			Username:  username,
			Message:   question,
			Response:  result.Text,
			Timestamp: s.now(),
		}
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.ChatHistoryRepository().Create(ctx, turn); err != nil {
			s.logger.Error("CHAT", "failed to persist chat turn", map[string]interface{}{
				"error":    err.Error(),
				"username": username,
			})
		}
	}

	return &dto.ChatResponse{Answer: result.Text, UsedPassage: result.UsedPassage}, nil
}
