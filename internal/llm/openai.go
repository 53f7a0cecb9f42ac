package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIStreamer streams chat completions via the OpenAI API.
type OpenAIStreamer struct {
	Model  string
	apiKey string
}

// NewOpenAIStreamer creates a streamer reading its key from apiKeyEnv.
func NewOpenAIStreamer(model, apiKeyEnv string) *OpenAIStreamer {
	return &OpenAIStreamer{
		Model:  model,
		apiKey: os.Getenv(apiKeyEnv),
	}
}

// IsConfigured checks if the API key is set.
func (s *OpenAIStreamer) IsConfigured() bool {
	return s.apiKey != ""
}

// Stream sends a prompt and forwards each response chunk to fn as it arrives,
// returning the accumulated text when the stream completes.
func (s *OpenAIStreamer) Stream(ctx context.Context, prompt, system string, fn func(chunk string)) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	client := openai.NewClient(option.WithAPIKey(s.apiKey))

	var messages []openai.ChatCompletionMessageParamUnion
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	stream := client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(s.Model),
		Messages: messages,
	})

	var b strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		b.WriteString(delta)
		if fn != nil {
			fn(delta)
		}
	}
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("OpenAI stream error: %w", err)
	}
	return b.String(), nil
}
