package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider generates text via the Anthropic Messages API.
type AnthropicProvider struct {
	Model     string
	MaxTokens int64
	apiKey    string
}

// NewAnthropicProvider creates a provider reading its key from apiKeyEnv.
func NewAnthropicProvider(model, apiKeyEnv string, maxTokens int64) *AnthropicProvider {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &AnthropicProvider{
		Model:     model,
		MaxTokens: maxTokens,
		apiKey:    os.Getenv(apiKeyEnv),
	}
}

// IsConfigured checks if the API key is set.
func (p *AnthropicProvider) IsConfigured() bool {
	return p.apiKey != ""
}

// Generate sends a prompt (with an optional system persona) and returns the
// concatenated text blocks of the response.
func (p *AnthropicProvider) Generate(ctx context.Context, prompt, system string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("anthropic API key not configured")
	}

	client := anthropic.NewClient(option.WithAPIKey(p.apiKey))

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.Model),
		MaxTokens: p.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("empty response from Anthropic API")
	}
	return b.String(), nil
}
