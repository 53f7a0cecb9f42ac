// Package outline structures the selected story and hook into a phased
// script plan.
package outline

import (
	"context"
	"fmt"

	"github.com/gfpd/contentengine/internal/knowledge"
	"github.com/gfpd/contentengine/internal/llm"
	"github.com/gfpd/contentengine/internal/prompt"
	"github.com/gfpd/contentengine/internal/workflow"
)

// Architect runs the outline step.
type Architect struct {
	gen     llm.Generator
	library *knowledge.Library
}

// NewArchitect creates an Architect.
func NewArchitect(gen llm.Generator, library *knowledge.Library) *Architect {
	return &Architect{gen: gen, library: library}
}

// Design generates the script outline. The outline's hook text is always the
// selected hook, regardless of what the response contains.
func (a *Architect) Design(ctx context.Context, story workflow.StoryCard, hook workflow.HookVariation, mode workflow.Mode) (*workflow.ScriptOutline, error) {
	if hook.Content == "" {
		return nil, fmt.Errorf("outline: no hook selected")
	}
	if !a.gen.IsConfigured() {
		return nil, fmt.Errorf("outline: generation provider not configured")
	}

	guide, err := a.library.ScriptingContext(mode)
	if err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}

	in, err := prompt.Build(prompt.KindOutline, mode, prompt.Inputs{
		Story:   prompt.StoryText(story),
		Hook:    hook.Content,
		Context: guide,
	})
	if err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}

	text, err := a.gen.Generate(ctx, in, prompt.System(prompt.KindOutline, mode))
	if err != nil {
		return nil, fmt.Errorf("outline: generating: %w", err)
	}

	var out workflow.ScriptOutline
	if err := llm.ParseJSONResponse(text, &out); err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}
	if len(out.Phases) == 0 {
		return nil, fmt.Errorf("outline: no phases in response")
	}
	for i, p := range out.Phases {
		if p.ID == "" {
			out.Phases[i].ID = fmt.Sprintf("phase%d", i+1)
		}
	}

	out.Hook = hook.Content
	return &out, nil
}
