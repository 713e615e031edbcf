package rag

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"medassist-be/pkg/metrics"
)

const (
	SourceLanguage           = "en"
	TranslationFailureSuffix = " ⚠ Translation failed."
)

// Translator rewrites answers into the caller's language on a best-effort basis.
type Translator struct {
	backend TranslationBackend
	logger  Logger
}

func NewTranslator(backend TranslationBackend, logger Logger) *Translator {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Translator{backend: backend, logger: logger}
}

// Available reports whether a translation backend is wired.
func (t *Translator) Available() bool {
	return t != nil && t.backend != nil
}

// Translate returns text unchanged for English or when no backend exists, and the original text
// with a warning suffix when translation fails.
func (t *Translator) Translate(ctx context.Context, text, targetLanguage string) string {
	target := strings.TrimSpace(targetLanguage)
	if target == "" || strings.EqualFold(target, SourceLanguage) || !t.Available() {
		return text
	}

	translated, err := t.translate(ctx, text, target)
	if err != nil {
		metrics.TranslationTotal.WithLabelValues("failed").Inc()
		t.logger.Warn(logModule, "translation failed, returning original text", map[string]interface{}{
			"error":  err.Error(),
			"target": target,
		})
		return text + TranslationFailureSuffix
	}
	metrics.TranslationTotal.WithLabelValues("ok").Inc()
	return translated
}

func (t *Translator) translate(ctx context.Context, text, target string) (string, error) {
	tag, err := language.Parse(target)
	if err != nil {
		return "", fmt.Errorf("%w: unknown language %q: %v", ErrTranslationFailure, target, err)
	}
	base, _ := tag.Base()
	if base.String() == SourceLanguage {
		return text, nil
	}

	translated, err := t.backend.Translate(ctx, text, tag.String())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslationFailure, err)
	}
	return translated, nil
}
