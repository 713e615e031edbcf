package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medassist-be/pkg/metrics"
)

const ValidationMessage = "⚠ Please enter a valid question."

// Strictness decides what happens when an optional collaborator is missing at build time.
type Strictness int

const (
	// FailOpen builds the pipeline anyway; missing pieces degrade at answer time.
	FailOpen Strictness = iota
	// FailClosed refuses to build a pipeline with a missing retriever, generator client or
	// translation backend.
	FailClosed
)

// Pipeline composes Retriever -> Generator -> Translator. It is the only entry point the chat
// layer uses.
type Pipeline struct {
	retriever  *Retriever
	generator  *Generator
	translator *Translator
	logger     Logger
}

func NewPipeline(
	retriever *Retriever,
	generator *Generator,
	translator *Translator,
	strictness Strictness,
	logger Logger,
) (*Pipeline, error) {
	if logger == nil {
		logger = nopLogger{}
	}
	if generator == nil {
		generator = NewGenerator(nil, logger)
	}
	if translator == nil {
		translator = NewTranslator(nil, logger)
	}

	missing := make([]string, 0, 3)
	if !retriever.Available() {
		missing = append(missing, "retriever")
	}
	if generator.client == nil {
		missing = append(missing, "generator")
	}
	if !translator.Available() {
		missing = append(missing, "translator")
	}

	if len(missing) > 0 {
		if strictness == FailClosed {
			return nil, fmt.Errorf("%w: %s", ErrMissingCollaborator, strings.Join(missing, ", "))
		}
		logger.Warn(logModule, "pipeline running degraded", map[string]interface{}{
			"missing": missing,
		})
	}

	return &Pipeline{
		retriever:  retriever,
		generator:  generator,
		translator: translator,
		logger:     logger,
	}, nil
}

// Answer never fails: remote errors are absorbed by each stage. A blank question short-circuits
// with ValidationMessage before any remote call.
func (p *Pipeline) Answer(ctx context.Context, question, language string) AnswerResult {
	question = strings.TrimSpace(question)
	if question == "" {
		return AnswerResult{Text: ValidationMessage, Rejected: true}
	}

	start := time.Now()
	defer func() {
		metrics.AnswerDuration.Observe(time.Since(start).Seconds())
	}()

	var passageText *string
	if p.retriever != nil {
		if passage := p.retriever.Retrieve(ctx, question); passage != nil {
			passageText = &passage.Text
		}
	}

	raw := p.generator.Generate(ctx, passageText, question)
	final := p.translator.Translate(ctx, raw, language)

	return AnswerResult{Text: final, UsedPassage: passageText != nil}
}
