package rewrite

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/gfpd/contentengine/internal/workflow"
)

// routeGen answers the script and title prompts differently, recording
// concurrency-safe call counts.
type routeGen struct {
	mu          sync.Mutex
	scriptResp  string
	scriptErr   error
	titlesResp  string
	titlesErr   error
	scriptCalls int
	titleCalls  int
}

func (g *routeGen) Generate(_ context.Context, prompt, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if strings.Contains(prompt, "needs 3 stronger titles") {
		g.titleCalls++
		return g.titlesResp, g.titlesErr
	}
	g.scriptCalls++
	return g.scriptResp, g.scriptErr
}

func (g *routeGen) IsConfigured() bool { return true }

func TestRewrite(t *testing.T) {
	gen := &routeGen{
		scriptResp: "The static fire lasted 12 seconds and hit 350 bar.",
		titlesResp: `["Raptor 3 Hits 350 Bar", "The 350 Bar Milestone", "SpaceX's Chamber Pressure Record"]`,
	}
	r := NewRewriter(gen)

	out, err := r.Rewrite(context.Background(), "so today spacex did a thing...", "old title", workflow.ModeLowkey)
	if err != nil {
		t.Fatal(err)
	}
	if out.WordCount != 10 {
		t.Errorf("word count = %d, want 10", out.WordCount)
	}
	if len(out.Titles) != 3 {
		t.Errorf("got %d titles", len(out.Titles))
	}
	if gen.scriptCalls != 1 || gen.titleCalls != 1 {
		t.Errorf("calls = %d script, %d titles", gen.scriptCalls, gen.titleCalls)
	}
}

func TestRewriteLenientTitleFallback(t *testing.T) {
	gen := &routeGen{
		scriptResp: "rewritten",
		titlesResp: `Sure! Here are titles: "First Improved Title" and "Second Improved Title"`,
	}
	out, err := NewRewriter(gen).Rewrite(context.Background(), "transcript", "old", workflow.ModeHype)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Titles) != 2 || out.Titles[0] != "First Improved Title" {
		t.Errorf("titles = %v", out.Titles)
	}
}

func TestRewriteScriptFailureSurfaces(t *testing.T) {
	gen := &routeGen{scriptErr: errors.New("overloaded"), titlesResp: `["A Title"]`}
	if _, err := NewRewriter(gen).Rewrite(context.Background(), "transcript", "old", workflow.ModeLowkey); err == nil {
		t.Fatal("expected script error to surface")
	}
}

func TestRewriteUnrecoverableTitles(t *testing.T) {
	gen := &routeGen{scriptResp: "rewritten", titlesResp: "no usable titles here"}
	if _, err := NewRewriter(gen).Rewrite(context.Background(), "transcript", "old", workflow.ModeLowkey); err == nil {
		t.Fatal("expected title failure to surface")
	}
}

func TestRewriteEmptyTranscript(t *testing.T) {
	if _, err := NewRewriter(&routeGen{}).Rewrite(context.Background(), "", "old", workflow.ModeLowkey); err == nil {
		t.Fatal("expected empty-transcript error")
	}
}

func TestRewriteStripsFences(t *testing.T) {
	gen := &routeGen{
		scriptResp: "```\nfenced script body\n```",
		titlesResp: `["A Long Enough Title"]`,
	}
	out, err := NewRewriter(gen).Rewrite(context.Background(), "transcript", "old", workflow.ModeLowkey)
	if err != nil {
		t.Fatal(err)
	}
	if out.Script != "fenced script body" {
		t.Errorf("script = %q", out.Script)
	}
}
