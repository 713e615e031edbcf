package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"medassist-be/internal/dto"
	"medassist-be/internal/pkg/logger"
	"medassist-be/pkg/document"
	"medassist-be/pkg/events"
	"medassist-be/pkg/rag"

	"github.com/google/uuid"
)

// PageIngestor chunks, embeds and indexes extracted pages.
type PageIngestor interface {
	IngestPages(ctx context.Context, source string, pages []string) (rag.IngestStats, error)
}

// SourceCounter reports how many passages are already stored for a source.
type SourceCounter interface {
	CountSource(ctx context.Context, source string) (int64, error)
}

type IIngestService interface {
	// IngestFile runs the whole ingestion synchronously.
	IngestFile(ctx context.Context, path, source string) (*dto.IngestResult, error)
	// Enqueue stores the upload and hands it to the background consumer.
	Enqueue(ctx context.Context, filename string, content io.Reader) (*dto.IngestAcceptedResponse, error)
}

type ingestService struct {
	ingestor  PageIngestor
	counter   SourceCounter
	publisher IPublisherService
	uploadDir string
	events    events.Publisher
	logger    logger.ILogger
}

// NewIngestService accepts a nil counter and a nil event publisher.
func NewIngestService(
	ingestor PageIngestor,
	counter SourceCounter,
	publisher IPublisherService,
	uploadDir string,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IIngestService {
	return &ingestService{
		ingestor:  ingestor,
		counter:   counter,
		publisher: publisher,
		uploadDir: uploadDir,
		events:    eventPublisher,
		logger:    log,
	}
}

func (s *ingestService) IngestFile(ctx context.Context, path, source string) (*dto.IngestResult, error) {
	if source == "" {
		source = filepath.Base(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pages, err := document.ExtractPages(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", source, err)
	}

	existing := s.existing(ctx, source)

	stats, err := s.ingestor.IngestPages(ctx, source, pages)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", source, err)
	}

	s.logger.Info("INGEST", "document ingested", map[string]interface{}{
		"source":   source,
		"pages":    stats.Pages,
		"chunks":   stats.Chunks,
		"upserted": stats.Upserted,
		"existing": existing,
	})
	if s.events != nil {
		evt := events.NewDocumentIngested(source, stats.Pages, stats.Chunks, stats.Upserted)
		if err := s.events.Publish(ctx, evt); err != nil {
			s.logger.Warn("INGEST", "failed to publish document.ingested", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.IngestResult{
		Source:   source,
		Pages:    stats.Pages,
		Chunks:   stats.Chunks,
		Upserted: stats.Upserted,
		Existing: existing,
	}, nil
}

func (s *ingestService) existing(ctx context.Context, source string) int64 {
	if s.counter == nil {
		return 0
	}
	n, err := s.counter.CountSource(ctx, source)
	if err != nil {
		s.logger.Warn("INGEST", "failed to count existing passages", map[string]interface{}{
			"source": source,
			"error":  err.Error(),
		})
		return 0
	}
	if n > 0 {
		s.logger.Info("INGEST", "source already indexed, chunks will be overwritten", map[string]interface{}{
			"source":   source,
			"existing": n,
		})
	}
	return n
}

func (s *ingestService) Enqueue(ctx context.Context, filename string, content io.Reader) (*dto.IngestAcceptedResponse, error) {
	source := filepath.Base(filename)
	if !strings.EqualFold(filepath.Ext(source), ".pdf") {
		return nil, ErrNotPDF
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, err
	}

	jobId := uuid.New().String()
	path := filepath.Join(s.uploadDir, jobId+".pdf")

	out, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(out, content); err != nil {
		out.Close()
		os.Remove(path)
		return nil, err
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return nil, err
	}

	payload, err := json.Marshal(dto.PublishIngestDocumentMessage{
		JobId:    jobId,
		FilePath: path,
		Source:   source,
	})
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		os.Remove(path)
		return nil, err
	}

	s.logger.Info("INGEST", "document queued", map[string]interface{}{
		"job_id": jobId,
		"source": source,
	})
	return &dto.IngestAcceptedResponse{JobId: jobId, Source: source}, nil
}
