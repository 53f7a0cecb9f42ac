// Package pipeline sequences the step executors over the workflow state.
// Every forward transition is gated on CanAdvance, and the state is persisted
// only after a step has fully succeeded.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gfpd/contentengine/internal/briefing"
	"github.com/gfpd/contentengine/internal/config"
	"github.com/gfpd/contentengine/internal/database"
	"github.com/gfpd/contentengine/internal/hook"
	"github.com/gfpd/contentengine/internal/knowledge"
	"github.com/gfpd/contentengine/internal/llm"
	"github.com/gfpd/contentengine/internal/outline"
	"github.com/gfpd/contentengine/internal/packaging"
	"github.com/gfpd/contentengine/internal/radar"
	"github.com/gfpd/contentengine/internal/rewrite"
	"github.com/gfpd/contentengine/internal/script"
	"github.com/gfpd/contentengine/internal/tts"
	"github.com/gfpd/contentengine/internal/workflow"
)

// Step executor surfaces, narrowed to what the orchestrator calls so tests
// can substitute fakes.
type scanner interface {
	Scan(ctx context.Context, mode workflow.Mode) (*workflow.RadarScanResponse, error)
}

type briefer interface {
	Build(ctx context.Context, story workflow.StoryCard, mode workflow.Mode) (*workflow.Briefing, error)
}

type packager interface {
	Package(ctx context.Context, story workflow.StoryCard, mode workflow.Mode) (*workflow.PackagingResult, error)
}

type hookWriter interface {
	Write(ctx context.Context, story workflow.StoryCard, title workflow.TitleOption, mode workflow.Mode) (*workflow.HookResult, error)
}

type outliner interface {
	Design(ctx context.Context, story workflow.StoryCard, h workflow.HookVariation, mode workflow.Mode) (*workflow.ScriptOutline, error)
}

type scriptWriter interface {
	WriteAll(ctx context.Context, o workflow.ScriptOutline, sources []workflow.SourceURL, mode workflow.Mode) (*workflow.GeneratedScript, error)
	WritePhase(ctx context.Context, o workflow.ScriptOutline, existing *workflow.GeneratedScript, phaseID string, sources []workflow.SourceURL, mode workflow.Mode) (*workflow.GeneratedScript, error)
}

type ttsTagger interface {
	Optimize(ctx context.Context, scriptText string, mode workflow.Mode, onChunk func(string)) (string, error)
}

type transcriptRewriter interface {
	Rewrite(ctx context.Context, transcript, videoTitle string, mode workflow.Mode) (*rewrite.Result, error)
}

// Pipeline orchestrates the content workflow.
type Pipeline struct {
	db    *database.DB
	state *workflow.State
	mode  workflow.Mode

	scanner  scanner
	briefer  briefer
	packager packager
	hooks    hookWriter
	outliner outliner
	scripts  scriptWriter
	tagger   ttsTagger
	rewriter transcriptRewriter
}

// New wires the pipeline from config: providers, knowledge library, and all
// step executors. The persisted state and mode preference are loaded
// immediately.
func New(cfg *config.Config, db *database.DB) *Pipeline {
	gen := llm.NewAnthropicProvider(cfg.Generation.Model, cfg.Generation.APIKeyEnv, int64(cfg.Generation.MaxTokens))
	streamer := llm.NewOpenAIStreamer(cfg.Streaming.Model, cfg.Streaming.APIKeyEnv)

	var searcher llm.Searcher
	if cfg.Search.Enabled {
		searcher = llm.NewPerplexitySearcher(cfg.Search.Model, cfg.Search.APIKeyEnv)
	}

	library := knowledge.NewLibrary(cfg.GetKnowledgeDir())
	fetchTimeout := time.Duration(cfg.Sources.FetchTimeoutSeconds) * time.Second

	feeds := make([]radar.FeedConfig, len(cfg.Radar.Feeds))
	for i, f := range cfg.Radar.Feeds {
		feeds[i] = radar.FeedConfig{URL: f.URL, Name: f.Name}
	}

	mode := workflow.Mode(cfg.Mode)
	if !mode.Valid() {
		mode = workflow.ModeLowkey
	}

	return &Pipeline{
		db:       db,
		state:    db.LoadState(),
		mode:     db.LoadMode(mode),
		scanner:  radar.NewScanner(gen, searcher, library, feeds, cfg.Radar.DaysBack),
		briefer:  briefing.NewBuilder(gen, library, fetchTimeout),
		packager: packaging.NewPackager(gen, library),
		hooks:    hook.NewWriter(gen, library),
		outliner: outline.NewArchitect(gen, library),
		scripts:  script.NewWriter(gen, library),
		tagger:   tts.NewOptimizer(streamer),
		rewriter: rewrite.NewRewriter(gen),
	}
}

// State returns the current workflow state.
func (p *Pipeline) State() *workflow.State {
	return p.state
}

// Mode returns the active content mode.
func (p *Pipeline) Mode() workflow.Mode {
	return p.mode
}

// SetMode switches the content mode and persists the preference. The workflow
// state itself is untouched.
func (p *Pipeline) SetMode(m workflow.Mode) error {
	if !m.Valid() {
		return fmt.Errorf("unknown mode %q (want hype or lowkey)", m)
	}
	if err := p.db.SaveMode(m); err != nil {
		return err
	}
	p.mode = m
	return nil
}

// Scan runs the radar step and records the scan. Scan results live in scan
// history, not in the workflow state; selection pulls from the latest scan.
func (p *Pipeline) Scan(ctx context.Context) (*workflow.RadarScanResponse, error) {
	scan, err := p.scanner.Scan(ctx, p.mode)
	if err != nil {
		return nil, err
	}
	if _, err := p.db.InsertScan(scan); err != nil {
		return nil, fmt.Errorf("recording scan: %w", err)
	}
	return scan, nil
}

// SelectStory picks a story from the latest scan and advances to briefing.
func (p *Pipeline) SelectStory(id string) error {
	scan, err := p.db.GetLatestScan()
	if err != nil {
		return fmt.Errorf("loading latest scan: %w", err)
	}
	if scan == nil {
		return fmt.Errorf("no scan available; run a scan first")
	}

	for _, story := range scan.Stories {
		if story.ID == id {
			p.state.SelectStory(story)
			return p.db.SaveState(p.state)
		}
	}
	return fmt.Errorf("story %q not in the latest scan", id)
}

// Brief generates the briefing for the selected story.
func (p *Pipeline) Brief(ctx context.Context) (*workflow.Briefing, error) {
	if !p.state.CanAdvance(workflow.PhaseBriefing) {
		return nil, fmt.Errorf("no story selected")
	}

	b, err := p.briefer.Build(ctx, *p.state.SelectedStory, p.mode)
	if err != nil {
		return nil, err
	}

	p.state.SetBriefing(*b)
	if err := p.db.SaveState(p.state); err != nil {
		return nil, err
	}
	return b, nil
}

// Package generates title options and thumbnail direction for the selected
// story and advances to the packaging phase.
func (p *Pipeline) Package(ctx context.Context) (*workflow.PackagingResult, error) {
	if !p.state.CanAdvance(workflow.PhasePackaging) {
		return nil, fmt.Errorf("no story selected")
	}

	result, err := p.packager.Package(ctx, *p.state.SelectedStory, p.mode)
	if err != nil {
		return nil, err
	}

	p.state.SetPackaging(*result)
	if err := p.db.SaveState(p.state); err != nil {
		return nil, err
	}
	return result, nil
}

// SelectTitle picks a title from the packaging result and advances to the
// hook phase.
func (p *Pipeline) SelectTitle(id string) error {
	if p.state.Packaging == nil {
		return fmt.Errorf("no packaging result; run package first")
	}
	for _, title := range p.state.Packaging.Titles {
		if title.ID == id {
			p.state.SelectTitle(title)
			return p.db.SaveState(p.state)
		}
	}
	return fmt.Errorf("title %q not in the packaging result", id)
}

// Hook generates scored hook variations for the selected title.
func (p *Pipeline) Hook(ctx context.Context) (*workflow.HookResult, error) {
	if !p.state.CanAdvance(workflow.PhaseHook) {
		return nil, fmt.Errorf("no title selected")
	}

	result, err := p.hooks.Write(ctx, *p.state.SelectedStory, *p.state.SelectedTitle, p.mode)
	if err != nil {
		return nil, err
	}

	p.state.SetHookResult(*result)
	if err := p.db.SaveState(p.state); err != nil {
		return nil, err
	}
	return result, nil
}

// SelectHook picks a hook variation and advances to the outline phase.
func (p *Pipeline) SelectHook(id string) error {
	if p.state.HookResult == nil {
		return fmt.Errorf("no hooks generated; run hook first")
	}
	for _, h := range p.state.HookResult.Hooks {
		if h.ID == id {
			p.state.SelectHook(h)
			return p.db.SaveState(p.state)
		}
	}
	return fmt.Errorf("hook %q not in the hook result", id)
}

// Outline generates the script outline. When no hook has been explicitly
// selected, the scoring winner is promoted automatically.
func (p *Pipeline) Outline(ctx context.Context) (*workflow.ScriptOutline, error) {
	if p.state.SelectedHook == nil && p.state.HookResult != nil && p.state.HookResult.Winner != nil {
		p.state.SelectHook(*p.state.HookResult.Winner)
	}
	if !p.state.CanAdvance(workflow.PhaseOutline) {
		return nil, fmt.Errorf("no hook selected")
	}

	o, err := p.outliner.Design(ctx, *p.state.SelectedStory, *p.state.SelectedHook, p.mode)
	if err != nil {
		return nil, err
	}

	p.state.SetOutline(*o)
	if err := p.db.SaveState(p.state); err != nil {
		return nil, err
	}
	return o, nil
}

// Script generates the full script, or regenerates a single phase when
// phaseID is non-empty. A complete script is archived.
func (p *Pipeline) Script(ctx context.Context, phaseID string) (*workflow.GeneratedScript, error) {
	if !p.state.CanAdvance(workflow.PhaseScript) {
		return nil, fmt.Errorf("no outline available")
	}

	var sources []workflow.SourceURL
	if p.state.Briefing != nil {
		sources = p.state.Briefing.Sources
	} else if p.state.SelectedStory != nil {
		sources = p.state.SelectedStory.SourceUrls
	}

	var (
		result *workflow.GeneratedScript
		err    error
	)
	if phaseID == "" {
		result, err = p.scripts.WriteAll(ctx, *p.state.Outline, sources, p.mode)
	} else {
		result, err = p.scripts.WritePhase(ctx, *p.state.Outline, p.state.Script, phaseID, sources, p.mode)
	}
	if err != nil {
		return nil, err
	}

	p.state.SetScript(*result)
	if err := p.db.SaveState(p.state); err != nil {
		return nil, err
	}

	if len(result.Segments) == len(p.state.Outline.Phases) {
		if err := p.archiveScript(result); err != nil {
			return nil, fmt.Errorf("archiving script: %w", err)
		}
	}
	return result, nil
}

func (p *Pipeline) archiveScript(s *workflow.GeneratedScript) error {
	title := "untitled"
	if p.state.SelectedTitle != nil {
		title = p.state.SelectedTitle.Title
	}
	_, err := p.db.InsertScript(title, string(p.mode), s.TotalWordCount, ScriptMarkdown(p.state))
	return err
}

// TTS streams the emotion-tagged version of the current script.
func (p *Pipeline) TTS(ctx context.Context, onChunk func(string)) (string, error) {
	if p.state.Script == nil {
		return "", fmt.Errorf("no script generated")
	}
	return p.tagger.Optimize(ctx, plainScript(p.state.Script), p.mode, onChunk)
}

// TTSText streams emotion tags over caller-provided text instead of the
// stored script.
func (p *Pipeline) TTSText(ctx context.Context, text string, onChunk func(string)) (string, error) {
	return p.tagger.Optimize(ctx, text, p.mode, onChunk)
}

// Rewrite produces an original script plus improved titles from a transcript.
func (p *Pipeline) Rewrite(ctx context.Context, transcript, videoTitle string) (*rewrite.Result, error) {
	return p.rewriter.Rewrite(ctx, transcript, videoTitle, p.mode)
}

// Reset returns the workflow to the radar phase and clears the persisted
// state. Scan history and archived scripts are kept.
func (p *Pipeline) Reset() error {
	p.state.Reset()
	return p.db.ClearState()
}

// plainScript joins segment contents for TTS input.
func plainScript(s *workflow.GeneratedScript) string {
	var parts []string
	for _, seg := range s.Segments {
		parts = append(parts, seg.Content)
	}
	return strings.Join(parts, "\n\n")
}
