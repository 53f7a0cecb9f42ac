// Package llm provides the text-generation, streaming, and search
// capabilities the pipeline steps consume, plus tolerant response parsing.
package llm

import "context"

// Generator is the interface for text generation providers.
type Generator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
	IsConfigured() bool
}

// Streamer is the interface for streaming text generation. Each received
// chunk is passed to fn before being accumulated; the full text is returned
// when the stream ends.
type Streamer interface {
	Stream(ctx context.Context, prompt, system string, fn func(chunk string)) (string, error)
	IsConfigured() bool
}

// Searcher is the interface for real-time search providers.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
	IsConfigured() bool
}
