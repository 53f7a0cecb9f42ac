// Package briefing turns a selected story into a four-pillar intelligence
// briefing, grounded in readable extracts of the story's sources.
package briefing

import (
	"context"
	"fmt"
	"time"

	"github.com/gfpd/contentengine/internal/knowledge"
	"github.com/gfpd/contentengine/internal/llm"
	"github.com/gfpd/contentengine/internal/prompt"
	"github.com/gfpd/contentengine/internal/workflow"
)

// Builder runs the briefing step.
type Builder struct {
	gen     llm.Generator
	library *knowledge.Library
	fetcher *sourceFetcher
}

// NewBuilder creates a Builder.
func NewBuilder(gen llm.Generator, library *knowledge.Library, fetchTimeout time.Duration) *Builder {
	return &Builder{gen: gen, library: library, fetcher: newSourceFetcher(fetchTimeout)}
}

type briefingPayload struct {
	TechnicalPillars workflow.TechnicalPillars `json:"technicalPillars"`
}

// Build generates the briefing for a story.
func (b *Builder) Build(ctx context.Context, story workflow.StoryCard, mode workflow.Mode) (*workflow.Briefing, error) {
	if story.ID == "" {
		return nil, fmt.Errorf("briefing: story has no ID")
	}
	if !b.gen.IsConfigured() {
		return nil, fmt.Errorf("briefing: generation provider not configured")
	}

	research, err := b.library.ResearchContext(mode)
	if err != nil {
		return nil, fmt.Errorf("briefing: %w", err)
	}

	extracts := b.fetcher.fetchAll(ctx, story.SourceUrls)

	p, err := prompt.Build(prompt.KindBriefing, mode, prompt.Inputs{
		Story:         prompt.StoryText(story),
		SearchResults: extracts,
		Context:       research,
	})
	if err != nil {
		return nil, fmt.Errorf("briefing: %w", err)
	}

	text, err := b.gen.Generate(ctx, p, prompt.System(prompt.KindBriefing, mode))
	if err != nil {
		return nil, fmt.Errorf("briefing: generating: %w", err)
	}

	var payload briefingPayload
	if err := llm.ParseJSONResponse(text, &payload); err != nil {
		return nil, fmt.Errorf("briefing: %w", err)
	}
	if payload.TechnicalPillars.HardwareData == "" {
		return nil, fmt.Errorf("briefing: response missing technical pillars")
	}

	return &workflow.Briefing{
		StoryID:          story.ID,
		TechnicalPillars: payload.TechnicalPillars,
		Sources:          story.SourceUrls,
	}, nil
}
