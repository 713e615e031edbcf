package embedding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type GeminiProvider struct {
	Model     string
	Dimension int
	apiKey    string
	client    *resty.Client
}

type geminiEmbeddingPart struct {
	Text string `json:"text"`
}

type geminiEmbeddingContent struct {
	Parts []geminiEmbeddingPart `json:"parts"`
}

type geminiEmbeddingRequest struct {
	Model                string                 `json:"model"`
	Content              geminiEmbeddingContent `json:"content"`
	TaskType             string                 `json:"taskType,omitempty"`
	OutputDimensionality int                    `json:"outputDimensionality,omitempty"`
}

func NewGeminiProvider(baseURL, apiKey, model string, dimension int) EmbeddingProvider {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	if model == "" {
		model = "text-embedding-004"
	}
	return &GeminiProvider{
		Model:     model,
		Dimension: dimension,
		apiKey:    apiKey,
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(30*time.Second).
			SetHeader("Content-Type", "application/json"),
	}
}

func (p *GeminiProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	req := geminiEmbeddingRequest{
		Model:                "models/" + p.Model,
		Content:              geminiEmbeddingContent{Parts: []geminiEmbeddingPart{{Text: text}}},
		TaskType:             taskType,
		OutputDimensionality: p.Dimension,
	}

	var result EmbeddingResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", p.apiKey).
		SetPathParam("model", p.Model).
		SetBody(req).
		SetResult(&result).
		Post("/v1beta/models/{model}:embedContent")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("error from gemini response, code %d, body %s", resp.StatusCode(), resp.String())
	}
	if len(result.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini returned an empty embedding")
	}

	return &result, nil
}
