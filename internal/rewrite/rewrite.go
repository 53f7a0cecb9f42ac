// Package rewrite turns an existing video transcript into an original script
// and generates improved titles for it. The two generations have no data
// dependency and run concurrently.
package rewrite

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/gfpd/contentengine/internal/analysis"
	"github.com/gfpd/contentengine/internal/llm"
	"github.com/gfpd/contentengine/internal/prompt"
	"github.com/gfpd/contentengine/internal/workflow"
)

const titleCount = 3

// transcriptHead is how much of the transcript the title prompt sees.
const transcriptHead = 2000

// Result is the outcome of a rewrite run.
type Result struct {
	Script    string   `json:"script"`
	WordCount int      `json:"wordCount"`
	Titles    []string `json:"titles"`
}

// Rewriter runs the rewrite step.
type Rewriter struct {
	gen llm.Generator
}

// NewRewriter creates a Rewriter.
func NewRewriter(gen llm.Generator) *Rewriter {
	return &Rewriter{gen: gen}
}

// Rewrite produces an original script and improved titles from a transcript.
func (r *Rewriter) Rewrite(ctx context.Context, transcript, videoTitle string, mode workflow.Mode) (*Result, error) {
	if transcript == "" {
		return nil, fmt.Errorf("rewrite: empty transcript")
	}
	if !r.gen.IsConfigured() {
		return nil, fmt.Errorf("rewrite: generation provider not configured")
	}

	var (
		wg        sync.WaitGroup
		script    string
		scriptErr error
		titles    []string
		titlesErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		script, scriptErr = r.rewriteScript(ctx, transcript, videoTitle, mode)
	}()
	go func() {
		defer wg.Done()
		titles, titlesErr = r.improveTitles(ctx, transcript, videoTitle, mode)
	}()
	wg.Wait()

	if scriptErr != nil {
		return nil, fmt.Errorf("rewrite: %w", scriptErr)
	}
	if titlesErr != nil {
		return nil, fmt.Errorf("rewrite: %w", titlesErr)
	}

	return &Result{
		Script:    script,
		WordCount: analysis.CountWords(script),
		Titles:    titles,
	}, nil
}

func (r *Rewriter) rewriteScript(ctx context.Context, transcript, videoTitle string, mode workflow.Mode) (string, error) {
	p, err := prompt.Build(prompt.KindRewriteScript, mode, prompt.Inputs{
		Transcript: transcript,
		VideoTitle: videoTitle,
	})
	if err != nil {
		return "", err
	}
	text, err := r.gen.Generate(ctx, p, prompt.System(prompt.KindRewriteScript, mode))
	if err != nil {
		return "", fmt.Errorf("rewriting script: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("rewriting script: empty response")
	}
	return llm.StripFences(text), nil
}

// improveTitles parses the response as a JSON array first and falls back to
// pulling quoted substrings out of a malformed one.
func (r *Rewriter) improveTitles(ctx context.Context, transcript, videoTitle string, mode workflow.Mode) ([]string, error) {
	head := transcript
	if len(head) > transcriptHead {
		head = head[:transcriptHead]
	}

	p, err := prompt.Build(prompt.KindRewriteTitles, mode, prompt.Inputs{
		Transcript: head,
		VideoTitle: videoTitle,
	})
	if err != nil {
		return nil, err
	}
	text, err := r.gen.Generate(ctx, p, prompt.System(prompt.KindRewriteTitles, mode))
	if err != nil {
		return nil, fmt.Errorf("improving titles: %w", err)
	}

	var titles []string
	if err := llm.ParseJSONResponse(text, &titles); err != nil || len(titles) == 0 {
		titles = llm.ExtractQuoted(text, titleCount)
		if len(titles) == 0 {
			return nil, fmt.Errorf("improving titles: no titles in response")
		}
		log.Printf("title response malformed, recovered %d titles leniently", len(titles))
	}
	if len(titles) > titleCount {
		titles = titles[:titleCount]
	}
	return titles, nil
}
