package pipeline

import (
	"fmt"
	"strings"

	"github.com/gfpd/contentengine/internal/workflow"
)

// StepResult describes one workflow step for status reporting.
type StepResult struct {
	Name    string
	Phase   workflow.Phase
	Done    bool
	Summary string
}

// Status reports each workflow step and what it has produced so far.
func (p *Pipeline) Status() []StepResult {
	s := p.state
	steps := []StepResult{
		{Name: "Radar", Phase: workflow.PhaseRadar, Done: s.SelectedStory != nil},
		{Name: "Briefing", Phase: workflow.PhaseBriefing, Done: s.Briefing != nil},
		{Name: "Packaging", Phase: workflow.PhasePackaging, Done: s.SelectedTitle != nil},
		{Name: "Hook", Phase: workflow.PhaseHook, Done: s.SelectedHook != nil},
		{Name: "Outline", Phase: workflow.PhaseOutline, Done: s.Outline != nil},
		{Name: "Script", Phase: workflow.PhaseScript, Done: s.Script != nil},
	}

	if s.SelectedStory != nil {
		steps[0].Summary = s.SelectedStory.Title
	}
	if s.Briefing != nil {
		steps[1].Summary = fmt.Sprintf("%d sources", len(s.Briefing.Sources))
	}
	if s.SelectedTitle != nil {
		steps[2].Summary = s.SelectedTitle.Title
	} else if s.Packaging != nil {
		steps[2].Summary = fmt.Sprintf("%d titles to choose from", len(s.Packaging.Titles))
	}
	if s.SelectedHook != nil {
		steps[3].Summary = fmt.Sprintf("%s (score %d)", s.SelectedHook.Type, s.SelectedHook.AnalysisScore)
	} else if s.HookResult != nil {
		steps[3].Summary = fmt.Sprintf("%d variations generated", len(s.HookResult.Hooks))
	}
	if s.Outline != nil {
		steps[4].Summary = fmt.Sprintf("%d phases, %d words planned", len(s.Outline.Phases), s.Outline.TotalEstimatedWords)
	}
	if s.Script != nil {
		steps[5].Summary = fmt.Sprintf("%d segments, %d words", len(s.Script.Segments), s.Script.TotalWordCount)
	}
	return steps
}

// ScriptMarkdown renders the state's script as a Markdown document.
func ScriptMarkdown(s *workflow.State) string {
	var b strings.Builder

	title := "Untitled"
	if s.SelectedTitle != nil {
		title = s.SelectedTitle.Title
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if s.Script == nil {
		return b.String()
	}

	for _, seg := range s.Script.Segments {
		name := seg.PhaseID
		if s.Outline != nil {
			for _, p := range s.Outline.Phases {
				if p.ID == seg.PhaseID {
					name = p.Name
					break
				}
			}
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", name, seg.Content)
	}

	if len(s.Script.Sources) > 0 {
		b.WriteString("## Sources\n\n")
		for _, src := range s.Script.Sources {
			fmt.Fprintf(&b, "- [%s](%s)\n", src.Title, src.URL)
		}
	}
	return b.String()
}
