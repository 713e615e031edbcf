package embedding

import (
	"context"

	"medassist-be/pkg/rag"
)

// TaskEncoder exposes a provider as a rag.Encoder for one task type.
type TaskEncoder struct {
	Provider EmbeddingProvider
	TaskType string
}

var _ rag.Encoder = TaskEncoder{}

func NewQueryEncoder(p EmbeddingProvider) TaskEncoder {
	return TaskEncoder{Provider: p, TaskType: TaskRetrievalQuery}
}

// NewDocumentEncoder is used when ingesting passages.
func NewDocumentEncoder(p EmbeddingProvider) TaskEncoder {
	return TaskEncoder{Provider: p, TaskType: TaskRetrievalDocument}
}

func (e TaskEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	res, err := e.Provider.Generate(ctx, text, e.TaskType)
	if err != nil {
		return nil, err
	}
	return res.Embedding.Values, nil
}
