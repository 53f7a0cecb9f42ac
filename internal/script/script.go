// Package script generates the narration for each outline phase. Phases are
// written sequentially so each prompt can carry a continuity window from the
// text generated so far; a phase that comes back too short gets exactly one
// expansion pass.
package script

import (
	"context"
	"fmt"
	"strings"

	"github.com/gfpd/contentengine/internal/analysis"
	"github.com/gfpd/contentengine/internal/knowledge"
	"github.com/gfpd/contentengine/internal/llm"
	"github.com/gfpd/contentengine/internal/prompt"
	"github.com/gfpd/contentengine/internal/workflow"
)

const (
	// continuityWindow is how many trailing characters of prior content each
	// phase prompt carries.
	continuityWindow = 500

	// expandThreshold triggers the one-shot expansion when a phase lands
	// under this fraction of its estimated words.
	expandThreshold = 0.8
)

// Writer runs the script step.
type Writer struct {
	gen     llm.Generator
	library *knowledge.Library
}

// NewWriter creates a Writer.
func NewWriter(gen llm.Generator, library *knowledge.Library) *Writer {
	return &Writer{gen: gen, library: library}
}

type phasePayload struct {
	PhaseID   string `json:"phaseId"`
	Content   string `json:"content"`
	WordCount int    `json:"wordCount"`
}

type expandPayload struct {
	ExpandedContent string `json:"expandedContent"`
	WordCount       int    `json:"wordCount"`
}

// WriteAll generates every phase of the outline in order.
func (w *Writer) WriteAll(ctx context.Context, outline workflow.ScriptOutline, sources []workflow.SourceURL, mode workflow.Mode) (*workflow.GeneratedScript, error) {
	if len(outline.Phases) == 0 {
		return nil, fmt.Errorf("script: outline has no phases")
	}
	if !w.gen.IsConfigured() {
		return nil, fmt.Errorf("script: generation provider not configured")
	}

	guide, err := w.library.ScriptingContext(mode)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	var segments []workflow.ScriptSegment
	for _, phase := range outline.Phases {
		previous := continuityTail(segments)
		seg, err := w.writePhase(ctx, outline, phase, previous, guide, mode)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	return assemble(segments, sources), nil
}

// WritePhase regenerates a single named phase, reusing the already-generated
// segments before it for the continuity window. The other segments are kept.
func (w *Writer) WritePhase(ctx context.Context, outline workflow.ScriptOutline, existing *workflow.GeneratedScript, phaseID string, sources []workflow.SourceURL, mode workflow.Mode) (*workflow.GeneratedScript, error) {
	if !w.gen.IsConfigured() {
		return nil, fmt.Errorf("script: generation provider not configured")
	}

	idx := -1
	for i, p := range outline.Phases {
		if p.ID == phaseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("script: unknown phase %q", phaseID)
	}

	guide, err := w.library.ScriptingContext(mode)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	var prior []workflow.ScriptSegment
	if existing != nil {
		for _, p := range outline.Phases[:idx] {
			if seg := findSegment(existing.Segments, p.ID); seg != nil {
				prior = append(prior, *seg)
			}
		}
	}

	seg, err := w.writePhase(ctx, outline, outline.Phases[idx], continuityTail(prior), guide, mode)
	if err != nil {
		return nil, err
	}

	var segments []workflow.ScriptSegment
	if existing != nil {
		segments = append(segments, existing.Segments...)
	}
	if replaced := findSegment(segments, phaseID); replaced != nil {
		*replaced = seg
	} else {
		segments = append(segments, seg)
	}
	if existing != nil && sources == nil {
		sources = existing.Sources
	}
	return assemble(segments, sources), nil
}

func (w *Writer) writePhase(ctx context.Context, outline workflow.ScriptOutline, phase workflow.ScriptPhase, previous, guide string, mode workflow.Mode) (workflow.ScriptSegment, error) {
	in := prompt.Inputs{
		Outline:         prompt.OutlineText(outline),
		PhaseID:         phase.ID,
		PhaseName:       phase.Name,
		KeyPoints:       phase.KeyPoints,
		TargetWords:     phase.EstimatedWords,
		PreviousContent: previous,
		Context:         guide,
	}

	p, err := prompt.Build(prompt.KindScriptPhase, mode, in)
	if err != nil {
		return workflow.ScriptSegment{}, fmt.Errorf("script phase %s: %w", phase.ID, err)
	}
	text, err := w.gen.Generate(ctx, p, prompt.System(prompt.KindScriptPhase, mode))
	if err != nil {
		return workflow.ScriptSegment{}, fmt.Errorf("script phase %s: generating: %w", phase.ID, err)
	}

	var payload phasePayload
	if err := llm.ParseJSONResponse(text, &payload); err != nil {
		return workflow.ScriptSegment{}, fmt.Errorf("script phase %s: %w", phase.ID, err)
	}
	if payload.Content == "" {
		return workflow.ScriptSegment{}, fmt.Errorf("script phase %s: empty content", phase.ID)
	}

	content := payload.Content
	words := analysis.CountWords(content)

	// One expansion pass when the phase comes back clearly short. The
	// expanded text is taken as-is even if it is still short.
	if phase.EstimatedWords > 0 && float64(words) < expandThreshold*float64(phase.EstimatedWords) {
		expanded, err := w.expand(ctx, content, words, phase.EstimatedWords, guide, mode)
		if err != nil {
			return workflow.ScriptSegment{}, fmt.Errorf("script phase %s: %w", phase.ID, err)
		}
		content = expanded
		words = analysis.CountWords(content)
	}

	a := analysis.Analyze(content, mode)
	return workflow.ScriptSegment{
		PhaseID:        phase.ID,
		Content:        content,
		WordCount:      words,
		AnalysisScore:  a.Score,
		PhrasesFound:   a.PhrasesFound,
		NeedsAttention: a.NeedsAttention,
		Recommendation: a.Recommendation,
	}, nil
}

func (w *Writer) expand(ctx context.Context, content string, currentWords, targetWords int, guide string, mode workflow.Mode) (string, error) {
	p, err := prompt.Build(prompt.KindExpand, mode, prompt.Inputs{
		Content:      content,
		CurrentWords: currentWords,
		TargetWords:  targetWords,
		Context:      guide,
	})
	if err != nil {
		return "", err
	}
	text, err := w.gen.Generate(ctx, p, prompt.System(prompt.KindExpand, mode))
	if err != nil {
		return "", fmt.Errorf("expanding: %w", err)
	}

	var payload expandPayload
	if err := llm.ParseJSONResponse(text, &payload); err != nil {
		return "", fmt.Errorf("expanding: %w", err)
	}
	if payload.ExpandedContent == "" {
		return "", fmt.Errorf("expanding: empty content")
	}
	return payload.ExpandedContent, nil
}

// continuityTail returns the last continuityWindow characters of the
// segments' concatenated content.
func continuityTail(segments []workflow.ScriptSegment) string {
	var parts []string
	for _, s := range segments {
		parts = append(parts, s.Content)
	}
	joined := strings.Join(parts, "\n\n")
	if len(joined) <= continuityWindow {
		return joined
	}
	return joined[len(joined)-continuityWindow:]
}

func findSegment(segments []workflow.ScriptSegment, phaseID string) *workflow.ScriptSegment {
	for i := range segments {
		if segments[i].PhaseID == phaseID {
			return &segments[i]
		}
	}
	return nil
}

func assemble(segments []workflow.ScriptSegment, sources []workflow.SourceURL) *workflow.GeneratedScript {
	total := 0
	for _, s := range segments {
		total += s.WordCount
	}
	return &workflow.GeneratedScript{Segments: segments, TotalWordCount: total, Sources: sources}
}
