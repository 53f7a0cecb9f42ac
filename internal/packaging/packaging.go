// Package packaging generates title options and thumbnail direction for a
// selected story.
package packaging

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/gfpd/contentengine/internal/knowledge"
	"github.com/gfpd/contentengine/internal/llm"
	"github.com/gfpd/contentengine/internal/prompt"
	"github.com/gfpd/contentengine/internal/workflow"
)

const titleCount = 3

// Packager runs the packaging step.
type Packager struct {
	gen     llm.Generator
	library *knowledge.Library
}

// NewPackager creates a Packager.
func NewPackager(gen llm.Generator, library *knowledge.Library) *Packager {
	return &Packager{gen: gen, library: library}
}

// Package generates the packaging for a story. A response that fails strict
// JSON parsing is salvaged by extracting quoted titles; only a response with
// no recoverable titles fails the step.
func (p *Packager) Package(ctx context.Context, story workflow.StoryCard, mode workflow.Mode) (*workflow.PackagingResult, error) {
	if story.ID == "" {
		return nil, fmt.Errorf("packaging: story has no ID")
	}
	if !p.gen.IsConfigured() {
		return nil, fmt.Errorf("packaging: generation provider not configured")
	}

	guide, err := p.library.PackagingContext(mode)
	if err != nil {
		return nil, fmt.Errorf("packaging: %w", err)
	}

	in, err := prompt.Build(prompt.KindPackaging, mode, prompt.Inputs{
		Story:   prompt.StoryText(story),
		Context: guide,
	})
	if err != nil {
		return nil, fmt.Errorf("packaging: %w", err)
	}

	text, err := p.gen.Generate(ctx, in, prompt.System(prompt.KindPackaging, mode))
	if err != nil {
		return nil, fmt.Errorf("packaging: generating: %w", err)
	}

	result, err := parsePackaging(text)
	if err != nil {
		return nil, fmt.Errorf("packaging: %w", err)
	}
	return result, nil
}

func parsePackaging(text string) (*workflow.PackagingResult, error) {
	var result workflow.PackagingResult
	if err := llm.ParseJSONResponse(text, &result); err != nil || len(result.Titles) == 0 {
		lenient := parseLenientTitles(text)
		if len(lenient) == 0 {
			if err == nil {
				err = fmt.Errorf("no titles in response")
			}
			return nil, err
		}
		log.Printf("packaging response malformed, recovered %d titles leniently", len(lenient))
		result = workflow.PackagingResult{Titles: lenient}
	}

	for i := range result.Titles {
		if result.Titles[i].ID == "" {
			result.Titles[i].ID = "title-" + strconv.Itoa(i+1)
		}
	}
	return &result, nil
}

// parseLenientTitles is the heuristic fallback: any quoted substrings long
// enough to plausibly be titles become title options.
func parseLenientTitles(text string) []workflow.TitleOption {
	var titles []workflow.TitleOption
	for _, s := range llm.ExtractQuoted(text, 0) {
		if len(s) < 15 {
			continue
		}
		titles = append(titles, workflow.TitleOption{Title: s})
		if len(titles) >= titleCount {
			break
		}
	}
	return titles
}
