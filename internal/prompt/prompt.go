// Package prompt builds the prompt and persona text for every generation
// step. Builders are pure formatting functions selected from a dispatch table
// keyed by (step kind, content mode); the mode is always an explicit
// parameter, never ambient state.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gfpd/contentengine/internal/workflow"
)

// Kind identifies a generation step.
type Kind string

const (
	KindRadarSearch    Kind = "radar-search"
	KindRadarFallback  Kind = "radar-fallback"
	KindRadarStructure Kind = "radar-structure"
	KindBriefing       Kind = "briefing"
	KindPackaging      Kind = "packaging"
	KindHook           Kind = "hook"
	KindOutline        Kind = "outline"
	KindScriptPhase    Kind = "script-phase"
	KindExpand         Kind = "expand"
	KindTTS            Kind = "tts"
	KindRewriteScript  Kind = "rewrite-script"
	KindRewriteTitles  Kind = "rewrite-titles"
)

// Inputs carries the typed material a builder may format. Builders only read
// the fields their step uses.
type Inputs struct {
	Story           string
	Briefing        string
	Title           string
	Hook            string
	Outline         string
	Context         string // knowledge-base guidance text
	Headlines       string // radar: recent feed headlines
	SearchResults   string // radar: raw search output
	PhaseID         string
	PhaseName       string
	KeyPoints       []string
	TargetWords     int
	CurrentWords    int
	PreviousContent string // trailing continuity window
	Content         string
	Transcript      string
	VideoTitle      string
}

type builder func(Inputs) string

type key struct {
	kind Kind
	mode workflow.Mode
}

// modeAny registers a builder for both modes.
const modeAny = workflow.Mode("")

// Build formats the prompt for a step kind under a content mode.
func Build(kind Kind, mode workflow.Mode, in Inputs) (string, error) {
	if b, ok := builders[key{kind, mode}]; ok {
		return b(in), nil
	}
	if b, ok := builders[key{kind, modeAny}]; ok {
		return b(in), nil
	}
	return "", fmt.Errorf("no prompt builder for step %q in mode %q", kind, mode)
}

// System returns the persona for a step kind under a content mode.
func System(kind Kind, mode workflow.Mode) string {
	if s, ok := personas[key{kind, mode}]; ok {
		return s
	}
	return personas[key{kind, modeAny}]
}

// StoryText flattens a story card into prompt material.
func StoryText(s workflow.StoryCard) string {
	var metrics []string
	for k, v := range s.HardwareData.KeyMetrics {
		metrics = append(metrics, k+": "+v)
	}
	sort.Strings(metrics)

	var sources []string
	for _, u := range s.SourceUrls {
		sources = append(sources, u.Title)
	}

	return strings.TrimSpace(fmt.Sprintf(`Title: %s
Summary: %s
Primary Hardware: %s
Agency: %s
Technical Specs: %s
Key Metrics: %s
Sources: %s`,
		s.Title, s.Summary,
		s.HardwareData.PrimaryHardware, s.HardwareData.Agency,
		strings.Join(s.HardwareData.TechnicalSpecs, ", "),
		strings.Join(metrics, ", "),
		strings.Join(sources, ", ")))
}

// OutlineText flattens an outline into prompt material.
func OutlineText(o workflow.ScriptOutline) string {
	var phases []string
	for _, p := range o.Phases {
		phases = append(phases, fmt.Sprintf("- %s (%d words): %s", p.Name, p.EstimatedWords, strings.Join(p.KeyPoints, "; ")))
	}
	return strings.TrimSpace(fmt.Sprintf("Hook: %s\n\nPhases:\n%s\n\nTotal target: %d words",
		o.Hook, strings.Join(phases, "\n"), o.TotalEstimatedWords))
}

func numberedPoints(points []string) string {
	var lines []string
	for i, p := range points {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, p))
	}
	return strings.Join(lines, "\n")
}
