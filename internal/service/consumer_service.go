package service

import (
	"context"
	"encoding/json"
	"os"

	"medassist-be/internal/dto"
	"medassist-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber    message.Subscriber
	topicName     string
	ingestService IIngestService
	logger        logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	ingestService IIngestService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:    subscriber,
		topicName:     topicName,
		ingestService: ingestService,
		logger:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

// processMessage always acks. A failed ingestion is logged and the upload removed; the
// admin re-uploads instead of the broker redelivering a document that will fail again.
func (cs *consumerService) processMessage(msg *message.Message) {
	defer msg.Ack()

	var payload dto.PublishIngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "failed to unmarshal ingest message", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		return
	}
	defer os.Remove(payload.FilePath)

	cs.logger.Info("CONSUMER", "processing document", map[string]interface{}{
		"job_id": payload.JobId,
		"source": payload.Source,
	})

	res, err := cs.ingestService.IngestFile(msg.Context(), payload.FilePath, payload.Source)
	if err != nil {
		cs.logger.Error("CONSUMER", "document ingestion failed", map[string]interface{}{
			"error":  err.Error(),
			"job_id": payload.JobId,
			"source": payload.Source,
		})
		return
	}

	cs.logger.Info("CONSUMER", "document processed", map[string]interface{}{
		"job_id":   payload.JobId,
		"source":   res.Source,
		"chunks":   res.Chunks,
		"upserted": res.Upserted,
	})
}
