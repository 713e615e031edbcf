package rag

import (
	"context"
	"fmt"
	"strings"

	"medassist-be/pkg/metrics"
)

const (
	DefaultSimilarityThreshold = 0.75
	DefaultTopK                = 5
	DefaultDimension           = 384
)

type RetrieverConfig struct {
	Threshold float64
	TopK      int
	// Dimension is the vector size the index was built with. Zero disables the check.
	Dimension int
}

// Retriever picks at most one supporting passage for a question.
type Retriever struct {
	encoder Encoder
	index   VectorIndex
	cfg     RetrieverConfig
	state   *RetrievalState
	logger  Logger
}

func NewRetriever(encoder Encoder, index VectorIndex, cfg RetrieverConfig, logger Logger) *Retriever {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultSimilarityThreshold
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Retriever{
		encoder: encoder,
		index:   index,
		cfg:     cfg,
		state:   &RetrievalState{},
		logger:  logger,
	}
}

// State exposes the shared "last passage" memory.
func (r *Retriever) State() *RetrievalState {
	return r.state
}

// Available reports whether both the encoder and the index are wired.
func (r *Retriever) Available() bool {
	return r != nil && r.encoder != nil && r.index != nil
}

// Retrieve returns the chosen passage or nil. Failures are logged, never returned.
func (r *Retriever) Retrieve(ctx context.Context, question string) *Passage {
	matches, err := r.search(ctx, question)
	if err != nil {
		metrics.RetrievalTotal.WithLabelValues(metrics.RetrievalUnavailable).Inc()
		r.logger.Warn(logModule, "retrieval unavailable, answering without passage", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	keywords := Keywords(question)
	m, ok := r.state.selectAndRemember(question, func(lastText string) (Match, bool) {
		for _, candidate := range matches {
			text := strings.TrimSpace(candidate.PassageText)
			if text == "" || text == lastText {
				continue
			}
			if candidate.Score >= r.cfg.Threshold && containsAny(text, keywords) {
				candidate.PassageText = text
				return candidate, true
			}
		}
		return Match{}, false
	})
	if !ok {
		metrics.RetrievalTotal.WithLabelValues(metrics.RetrievalMiss).Inc()
		r.logger.Info(logModule, "no passage qualified", map[string]interface{}{
			"candidates": len(matches),
		})
		return nil
	}

	metrics.RetrievalTotal.WithLabelValues(metrics.RetrievalHit).Inc()
	r.logger.Info(logModule, "passage selected", map[string]interface{}{
		"passage_id": m.ID,
		"score":      m.Score,
	})
	return &Passage{ID: m.ID, Text: m.PassageText}
}

func (r *Retriever) search(ctx context.Context, question string) ([]Match, error) {
	if !r.Available() {
		return nil, fmt.Errorf("%w: encoder or index not configured", ErrRetrievalUnavailable)
	}

	vector, err := r.encoder.Encode(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrRetrievalUnavailable, err)
	}
	if r.cfg.Dimension > 0 && len(vector) != r.cfg.Dimension {
		return nil, fmt.Errorf("%w: encoder returned %d dims, index expects %d",
			ErrRetrievalUnavailable, len(vector), r.cfg.Dimension)
	}

	matches, err := r.index.Query(ctx, vector, r.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrRetrievalUnavailable, err)
	}
	return matches, nil
}

// Keywords lowercases the question, drops '?' and splits on whitespace.
func Keywords(question string) []string {
	cleaned := strings.ReplaceAll(strings.ToLower(question), "?", "")
	return strings.Fields(cleaned)
}

func containsAny(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
