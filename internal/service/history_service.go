package service

import (
	"context"
	"time"

	"medassist-be/internal/dto"
	"medassist-be/internal/entity"
	"medassist-be/internal/pkg/logger"
	"medassist-be/internal/repository/specification"
	"medassist-be/internal/repository/unitofwork"
	"medassist-be/pkg/export"
)

// AssistantLabel names the bot in PDF transcripts.
const AssistantLabel = "Assistant"

type IHistoryService interface {
	List(ctx context.Context, username string, page dto.HistoryPage) ([]*dto.ChatTurnResponse, error)
	Clear(ctx context.Context, username string) (*dto.ClearHistoryResponse, error)
	ExportCSV(ctx context.Context, username string) (*dto.ExportFile, error)
	// ExportPDF renders every turn, or only those on date (YYYY-MM-DD) when it is not empty.
	ExportPDF(ctx context.Context, username, date string) (*dto.ExportFile, error)
}

type historyService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewHistoryService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IHistoryService {
	return &historyService{uowFactory: uowFactory, logger: log}
}

func (s *historyService) turns(ctx context.Context, username string, extra ...specification.Specification) ([]*entity.ChatTurn, error) {
	specs := append([]specification.Specification{
		specification.ByUsername{Username: username},
	}, extra...)
	specs = append(specs, specification.OrderBy{Field: "timestamp"})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatHistoryRepository().FindAll(ctx, specs...)
}

func (s *historyService) List(ctx context.Context, username string, page dto.HistoryPage) ([]*dto.ChatTurnResponse, error) {
	if page.Limit < 0 || page.Offset < 0 {
		return nil, ErrInvalidPage
	}

	var extra []specification.Specification
	if page.Limit > 0 {
		extra = append(extra, specification.Pagination{Limit: page.Limit, Offset: page.Offset})
	}

	turns, err := s.turns(ctx, username, extra...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatTurnResponse, 0, len(turns))
	for _, t := range turns {
		res = append(res, &dto.ChatTurnResponse{
			Id:        t.Id,
			Message:   t.Message,
			Response:  t.Response,
			Timestamp: t.Timestamp,
		})
	}
	return res, nil
}

func (s *historyService) Clear(ctx context.Context, username string) (*dto.ClearHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.ChatHistoryRepository().DeleteByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("HISTORY", "chat history cleared", map[string]interface{}{
		"username": username,
		"deleted":  deleted,
	})
	return &dto.ClearHistoryResponse{Deleted: deleted}, nil
}

func (s *historyService) ExportCSV(ctx context.Context, username string) (*dto.ExportFile, error) {
	turns, err := s.turns(ctx, username)
	if err != nil {
		return nil, err
	}

	content, err := export.WriteCSV(toRows(turns))
	if err != nil {
		return nil, err
	}
	return &dto.ExportFile{
		Filename:    export.CSVFilename(username),
		ContentType: "text/csv",
		Content:     content,
	}, nil
}

func (s *historyService) ExportPDF(ctx context.Context, username, date string) (*dto.ExportFile, error) {
	var extra []specification.Specification
	if date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return nil, ErrInvalidDate
		}
		extra = append(extra, specification.OnDate{Day: day})
	}

	turns, err := s.turns(ctx, username, extra...)
	if err != nil {
		return nil, err
	}
	if len(turns) == 0 {
		return nil, ErrNoHistory
	}

	content, err := export.WritePDF(export.PDFTitle(username, date), AssistantLabel, toRows(turns))
	if err != nil {
		return nil, err
	}
	return &dto.ExportFile{
		Filename:    export.PDFFilename(username, date),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func toRows(turns []*entity.ChatTurn) []export.Row {
	rows := make([]export.Row, 0, len(turns))
	for _, t := range turns {
		rows = append(rows, export.Row{Message: t.Message, Response: t.Response, Timestamp: t.Timestamp})
	}
	return rows
}
