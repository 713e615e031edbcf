package rag

import (
	"context"
	"fmt"

	"medassist-be/pkg/metrics"
)

const (
	promptWithPassage    = "%s\n\nUsing the above text, answer this question within 200 words maximum:\n\n%s"
	promptWithoutPassage = "Answer this medical question in simple terms, within 200 words maximum:\n\n%s"

	FallbackDisclaimer = "I can provide general medical information based on common knowledge. " +
		"If this is urgent or serious, please consult a medical professional immediately. "
	FallbackPassageNote = "\n\n(Referenced content summary applied.)"
)

// Generator turns (passage?, question) into an answer through a hosted model.
type Generator struct {
	client TextGenerator
	logger Logger
}

func NewGenerator(client TextGenerator, logger Logger) *Generator {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Generator{client: client, logger: logger}
}

// BuildPrompt returns exactly one of the two prompt templates.
func BuildPrompt(passage *string, question string) string {
	if passage != nil && *passage != "" {
		return fmt.Sprintf(promptWithPassage, *passage, question)
	}
	return fmt.Sprintf(promptWithoutPassage, question)
}

// FallbackAnswer is returned whenever generation fails. It never touches the network.
func FallbackAnswer(passage *string, question string) string {
	answer := FallbackDisclaimer + "You asked: " + question
	if passage != nil && *passage != "" {
		answer += FallbackPassageNote
	}
	return answer
}

// Generate makes a single attempt and returns the model text verbatim, or the fallback.
func (g *Generator) Generate(ctx context.Context, passage *string, question string) string {
	text, err := g.generate(ctx, BuildPrompt(passage, question))
	if err != nil {
		metrics.GenerationTotal.WithLabelValues("fallback").Inc()
		g.logger.Warn(logModule, "generation failed, using fallback answer", map[string]interface{}{
			"error":       err.Error(),
			"has_passage": passage != nil,
		})
		return FallbackAnswer(passage, question)
	}
	metrics.GenerationTotal.WithLabelValues("ok").Inc()
	return text
}

func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("%w: no generation client configured", ErrGenerationFailure)
	}
	text, err := g.client.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailure, err)
	}
	return text, nil
}
