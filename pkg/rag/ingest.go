package rag

import (
	"context"
	"fmt"
	"strconv"

	"medassist-be/pkg/metrics"
	"medassist-be/pkg/utils"
)

const (
	DefaultChunkWords   = 500
	DefaultChunkOverlap = 50
	DefaultBatchSize    = 100
)

type IngestConfig struct {
	ChunkSize int
	Overlap   int
	BatchSize int
	Dimension int
}

type IngestStats struct {
	Pages    int
	Chunks   int
	Upserted int
}

// Ingestor fills a VectorIndex from page text: chunk by words, encode, upsert in batches.
type Ingestor struct {
	encoder Encoder
	index   VectorIndex
	cfg     IngestConfig
	logger  Logger
}

func NewIngestor(encoder Encoder, index VectorIndex, cfg IngestConfig, logger Logger) *Ingestor {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkWords
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = 0
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Ingestor{encoder: encoder, index: index, cfg: cfg, logger: logger}
}

// ChunkID names the n-th chunk of a source. Re-ingesting the same source overwrites its chunks.
func ChunkID(source string, n int) string {
	if source == "" {
		return fmt.Sprintf("chunk-%d", n)
	}
	return fmt.Sprintf("%s:chunk-%d", source, n)
}

// IngestPages chunks every page independently and upserts the chunks in order.
// It stops at the first encoding or index error; stats report what was written before it.
func (in *Ingestor) IngestPages(ctx context.Context, source string, pages []string) (IngestStats, error) {
	stats := IngestStats{Pages: len(pages)}
	if in.encoder == nil || in.index == nil {
		return stats, fmt.Errorf("%w: ingestion needs an encoder and an index", ErrMissingCollaborator)
	}

	var chunks []string
	for _, page := range pages {
		chunks = append(chunks, utils.SplitWords(page, in.cfg.ChunkSize, in.cfg.Overlap)...)
	}
	stats.Chunks = len(chunks)

	for start := 0; start < len(chunks); start += in.cfg.BatchSize {
		end := start + in.cfg.BatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		items := make([]IndexItem, 0, end-start)
		for n := start; n < end; n++ {
			vector, err := in.encoder.Encode(ctx, chunks[n])
			if err != nil {
				return stats, fmt.Errorf("encode chunk %d: %w", n, err)
			}
			if in.cfg.Dimension > 0 && len(vector) != in.cfg.Dimension {
				return stats, fmt.Errorf("encode chunk %d: got %d dims, index expects %d", n, len(vector), in.cfg.Dimension)
			}
			items = append(items, IndexItem{
				ID:     ChunkID(source, n),
				Vector: vector,
				Metadata: Metadata{
					MetadataText:   chunks[n],
					MetadataSource: source,
					MetadataChunk:  strconv.Itoa(n),
				},
			})
		}

		if err := in.upsert(ctx, items); err != nil {
			return stats, fmt.Errorf("upsert batch at chunk %d: %w", start, err)
		}
		stats.Upserted += len(items)
		metrics.IngestedPassagesTotal.Add(float64(len(items)))

		in.logger.Info(logModule, "ingested batch", map[string]interface{}{
			"source":   source,
			"upserted": stats.Upserted,
			"total":    stats.Chunks,
		})
	}

	return stats, nil
}

func (in *Ingestor) upsert(ctx context.Context, items []IndexItem) error {
	if batch, ok := in.index.(BatchIndex); ok {
		return batch.UpsertBatch(ctx, items)
	}
	for _, item := range items {
		if err := in.index.Upsert(ctx, item.ID, item.Vector, item.Metadata); err != nil {
			return err
		}
	}
	return nil
}
