// Package hook generates opening variations for a title and scores each one,
// so the best-performing opening can be promoted into the outline.
package hook

import (
	"context"
	"fmt"

	"github.com/gfpd/contentengine/internal/analysis"
	"github.com/gfpd/contentengine/internal/knowledge"
	"github.com/gfpd/contentengine/internal/llm"
	"github.com/gfpd/contentengine/internal/prompt"
	"github.com/gfpd/contentengine/internal/workflow"
)

// Writer runs the hook step.
type Writer struct {
	gen     llm.Generator
	library *knowledge.Library
}

// NewWriter creates a Writer.
func NewWriter(gen llm.Generator, library *knowledge.Library) *Writer {
	return &Writer{gen: gen, library: library}
}

type hookPayload struct {
	Hooks []workflow.HookVariation `json:"hooks"`
}

// Write generates hook variations for a story and title, attaches the scoring
// analysis to each, and marks the winner.
func (w *Writer) Write(ctx context.Context, story workflow.StoryCard, title workflow.TitleOption, mode workflow.Mode) (*workflow.HookResult, error) {
	if title.Title == "" {
		return nil, fmt.Errorf("hook: no title selected")
	}
	if !w.gen.IsConfigured() {
		return nil, fmt.Errorf("hook: generation provider not configured")
	}

	guide, err := w.library.ScriptingContext(mode)
	if err != nil {
		return nil, fmt.Errorf("hook: %w", err)
	}

	in, err := prompt.Build(prompt.KindHook, mode, prompt.Inputs{
		Story:   prompt.StoryText(story),
		Title:   title.Title,
		Context: guide,
	})
	if err != nil {
		return nil, fmt.Errorf("hook: %w", err)
	}

	text, err := w.gen.Generate(ctx, in, prompt.System(prompt.KindHook, mode))
	if err != nil {
		return nil, fmt.Errorf("hook: generating: %w", err)
	}

	var payload hookPayload
	if err := llm.ParseJSONResponse(text, &payload); err != nil {
		return nil, fmt.Errorf("hook: %w", err)
	}
	if len(payload.Hooks) == 0 {
		return nil, fmt.Errorf("hook: no variations in response")
	}

	hooks := payload.Hooks
	for i := range hooks {
		// LLM-reported word counts are untrusted; recount from content.
		hooks[i].WordCount = analysis.CountWords(hooks[i].Content)

		a := analysis.Analyze(hooks[i].Content, mode)
		hooks[i].AnalysisScore = a.Score
		hooks[i].PhrasesFound = a.PhrasesFound
		hooks[i].NeedsAttention = a.NeedsAttention
		hooks[i].Recommendation = a.Recommendation
	}

	return &workflow.HookResult{Hooks: hooks, Winner: PickWinner(hooks)}, nil
}

// PickWinner returns the variation with the highest analysis score. Ties go
// to the earliest variation.
func PickWinner(hooks []workflow.HookVariation) *workflow.HookVariation {
	if len(hooks) == 0 {
		return nil
	}
	winner := &hooks[0]
	for i := 1; i < len(hooks); i++ {
		if hooks[i].AnalysisScore > winner.AnalysisScore {
			winner = &hooks[i]
		}
	}
	return winner
}
