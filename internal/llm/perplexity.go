package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// PerplexitySearcher runs real-time search via the Perplexity chat API.
// There is no official Go SDK, so this is a plain HTTP client.
type PerplexitySearcher struct {
	Model  string
	apiKey string
	client *http.Client
}

// NewPerplexitySearcher creates a searcher reading its key from apiKeyEnv.
func NewPerplexitySearcher(model, apiKeyEnv string) *PerplexitySearcher {
	if model == "" {
		model = "sonar"
	}
	return &PerplexitySearcher{
		Model:  model,
		apiKey: os.Getenv(apiKeyEnv),
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// IsConfigured checks if the API key is set.
func (p *PerplexitySearcher) IsConfigured() bool {
	return p.apiKey != ""
}

// Search sends a query and returns the response text.
func (p *PerplexitySearcher) Search(ctx context.Context, query string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("perplexity API key not configured")
	}

	body := map[string]any{
		"model": p.Model,
		"messages": []map[string]string{
			{"role": "user", "content": query},
		},
		"max_tokens":       4096,
		"return_citations": true,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.perplexity.ai/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("perplexity API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("perplexity API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in perplexity response")
	}
	return result.Choices[0].Message.Content, nil
}
