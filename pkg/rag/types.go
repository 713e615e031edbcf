// Package rag implements the retrieval-augmented answer pipeline used by the chat endpoint:
// retrieve at most one supporting passage, generate an answer, translate it.
//
// Every remote collaborator is treated as unreliable. Failures are logged and degrade the
// answer (no passage, fallback text, untranslated text); Pipeline.Answer always returns text.
package rag

import "context"

// Passage is a chunk of reference text stored with its embedding.
type Passage struct {
	ID           string
	Text         string
	SourceVector []float32
}

// Match is one nearest-neighbour hit returned by a VectorIndex.
type Match struct {
	ID          string
	PassageText string
	Score       float64 // cosine similarity, 1.0 = identical
}

// Metadata travels with a vector in the index. "text" holds the passage text.
type Metadata map[string]string

const (
	MetadataText   = "text"
	MetadataSource = "source"
	MetadataChunk  = "chunk"
)

// AnswerResult is handed to the caller, who persists {question, answer, timestamp}.
type AnswerResult struct {
	Text        string
	UsedPassage bool
	// Rejected is set when the question failed validation and no answer was produced.
	Rejected bool
}

// Encoder turns free text into a fixed-size vector.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex is a nearest-neighbour store. Query returns matches ordered by descending score.
type VectorIndex interface {
	Upsert(ctx context.Context, id string, vector []float32, metadata Metadata) error
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
}

// TextGenerator sends a single prompt to a hosted model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TranslationBackend translates text into an ISO language code.
type TranslationBackend interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// Logger is the subset of the application logger the pipeline needs.
type Logger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, string, map[string]interface{}) {}
func (nopLogger) Warn(string, string, map[string]interface{}) {}

const logModule = "RAG"

// IndexItem is one vector queued for a batch upsert.
type IndexItem struct {
	ID       string
	Vector   []float32
	Metadata Metadata
}

// BatchIndex is implemented by indexes that can write many vectors in one round trip.
type BatchIndex interface {
	UpsertBatch(ctx context.Context, items []IndexItem) error
}
