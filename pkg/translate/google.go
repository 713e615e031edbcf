package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://translation.googleapis.com"

// GoogleTranslator calls the Cloud Translation v2 REST API.
type GoogleTranslator struct {
	apiKey string
	source string
	client *resty.Client
}

func NewGoogleTranslator(baseURL, apiKey, source string) *GoogleTranslator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GoogleTranslator{
		apiKey: apiKey,
		source: source,
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(15*time.Second).
			SetHeader("Content-Type", "application/json"),
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Target string `json:"target"`
	Source string `json:"source,omitempty"`
	Format string `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

func (g *GoogleTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	var result translateResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(translateRequest{Q: text, Target: target, Source: g.source, Format: "text"}).
		SetResult(&result).
		Post("/language/translate/v2")
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("translate error: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if len(result.Data.Translations) == 0 {
		return "", fmt.Errorf("translate response has no translations")
	}

	return result.Data.Translations[0].TranslatedText, nil
}
