package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/merybenavente/ragsearch-engine/ragerr"
)

const embedURL = "https://api.cohere.com/v1/embed"

// Provider calls Cohere's /v1/embed endpoint.
type Provider struct {
	APIKey string
	Model  string
	Client *http.Client
}

// New constructs a Provider. timeout bounds each HTTP request.
func New(apiKey, model string, timeout time.Duration) *Provider {
	return &Provider{
		APIKey: apiKey,
		Model:  model,
		Client: &http.Client{Timeout: timeout},
	}
}

type embedRequest struct {
	Texts     []string `json:"texts"`
	Model     string   `json:"model"`
	InputType string   `json:"input_type"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Message    string      `json:"message"`
}

// Embed posts texts to Cohere and returns their embeddings in order.
func (p *Provider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if p.APIKey == "" {
		return nil, ragerr.New(ragerr.KindEmbeddingProviderError, "cohere: missing API key")
	}
	body, err := json.Marshal(embedRequest{Texts: texts, Model: p.Model, InputType: "search_document"})
	if err != nil {
		return nil, ragerr.Wrap(ragerr.KindEmbeddingProviderError, err, "cohere: encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, embedURL, bytes.NewReader(body))
	if err != nil {
		return nil, ragerr.Wrap(ragerr.KindEmbeddingProviderError, err, "cohere: build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, ragerr.Wrap(ragerr.KindEmbeddingProviderError, err, "cohere: request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ragerr.Wrap(ragerr.KindEmbeddingProviderError, err, "cohere: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, ragerr.New(ragerr.KindEmbeddingProviderError, fmt.Sprintf("cohere: status %d: %s", resp.StatusCode, string(raw)))
	}
	var decoded embedResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, ragerr.Wrap(ragerr.KindEmbeddingProviderError, err, "cohere: decode response")
	}
	if len(decoded.Embeddings) != len(texts) {
		return nil, ragerr.New(ragerr.KindEmbeddingProviderError, "cohere: embedding count mismatch")
	}
	return decoded.Embeddings, nil
}
