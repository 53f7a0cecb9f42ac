// Package tts tags a finished script with emotion markup for text-to-speech
// delivery. Output streams progressively so long scripts show up as they
// generate.
package tts

import (
	"context"
	"fmt"
	"strings"

	"github.com/gfpd/contentengine/internal/llm"
	"github.com/gfpd/contentengine/internal/prompt"
	"github.com/gfpd/contentengine/internal/workflow"
)

// Optimizer runs the TTS tagging step.
type Optimizer struct {
	streamer llm.Streamer
}

// NewOptimizer creates an Optimizer.
func NewOptimizer(streamer llm.Streamer) *Optimizer {
	return &Optimizer{streamer: streamer}
}

// Optimize streams the emotion-tagged version of script. Each chunk is passed
// to onChunk as it arrives; the full tagged text is returned when the stream
// completes. onChunk may be nil.
func (o *Optimizer) Optimize(ctx context.Context, script string, mode workflow.Mode, onChunk func(chunk string)) (string, error) {
	if strings.TrimSpace(script) == "" {
		return "", fmt.Errorf("tts: empty script")
	}
	if !o.streamer.IsConfigured() {
		return "", fmt.Errorf("tts: streaming provider not configured")
	}
	if onChunk == nil {
		onChunk = func(string) {}
	}

	p, err := prompt.Build(prompt.KindTTS, mode, prompt.Inputs{Content: script})
	if err != nil {
		return "", fmt.Errorf("tts: %w", err)
	}

	tagged, err := o.streamer.Stream(ctx, p, prompt.System(prompt.KindTTS, mode), onChunk)
	if err != nil {
		return "", fmt.Errorf("tts: streaming: %w", err)
	}
	if strings.TrimSpace(tagged) == "" {
		return "", fmt.Errorf("tts: empty response")
	}
	return tagged, nil
}
