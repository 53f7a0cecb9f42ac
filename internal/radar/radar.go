// Package radar scans for story candidates: recent feed headlines ground a
// real-time search, whose results are structured into scored story cards.
package radar

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gfpd/contentengine/internal/knowledge"
	"github.com/gfpd/contentengine/internal/llm"
	"github.com/gfpd/contentengine/internal/prompt"
	"github.com/gfpd/contentengine/internal/workflow"
)

// Scanner runs the radar step.
type Scanner struct {
	gen      llm.Generator
	search   llm.Searcher
	library  *knowledge.Library
	feeds    []FeedConfig
	daysBack int
}

// NewScanner creates a Scanner. search may be an unconfigured provider; the
// scan then goes straight to the generative fallback.
func NewScanner(gen llm.Generator, search llm.Searcher, library *knowledge.Library, feeds []FeedConfig, daysBack int) *Scanner {
	if daysBack <= 0 {
		daysBack = 7
	}
	return &Scanner{gen: gen, search: search, library: library, feeds: feeds, daysBack: daysBack}
}

type scanPayload struct {
	Stories []workflow.StoryCard `json:"stories"`
}

// Scan collects headlines, searches for current stories (falling back to
// generative synthesis when search is unavailable), and structures the result
// into story cards.
func (s *Scanner) Scan(ctx context.Context, mode workflow.Mode) (*workflow.RadarScanResponse, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("radar scan: invalid mode %q", mode)
	}
	if !s.gen.IsConfigured() {
		return nil, fmt.Errorf("radar scan: generation provider not configured")
	}

	research, err := s.library.ResearchContext(mode)
	if err != nil {
		return nil, fmt.Errorf("radar scan: %w", err)
	}

	headlines := headlineText(collectHeadlines(s.feeds, s.daysBack))

	raw, fallbackUsed, err := s.findStories(ctx, mode, headlines, research)
	if err != nil {
		return nil, fmt.Errorf("radar scan: %w", err)
	}

	structurePrompt, err := prompt.Build(prompt.KindRadarStructure, mode, prompt.Inputs{
		SearchResults: raw,
		Headlines:     headlines,
		Context:       research,
	})
	if err != nil {
		return nil, fmt.Errorf("radar scan: %w", err)
	}

	text, err := s.gen.Generate(ctx, structurePrompt, prompt.System(prompt.KindRadarStructure, mode))
	if err != nil {
		return nil, fmt.Errorf("radar scan: structuring stories: %w", err)
	}

	var payload scanPayload
	if err := llm.ParseJSONResponse(text, &payload); err != nil {
		return nil, fmt.Errorf("radar scan: %w", err)
	}
	if len(payload.Stories) == 0 {
		return nil, fmt.Errorf("radar scan: no stories in response")
	}

	now := time.Now()
	for i := range payload.Stories {
		if payload.Stories[i].ID == "" {
			payload.Stories[i].ID = fmt.Sprintf("story-%d-%d", now.Unix(), i)
		}
		if payload.Stories[i].Timestamp == "" {
			payload.Stories[i].Timestamp = now.Format(time.RFC3339)
		}
	}

	return &workflow.RadarScanResponse{
		Stories:       payload.Stories,
		ScanTimestamp: now.Format(time.RFC3339),
		FallbackUsed:  fallbackUsed,
	}, nil
}

// findStories tries the search provider first. A search failure is recovered
// by asking the generation provider to synthesize plausible results; the
// fallback is recorded for downstream transparency.
func (s *Scanner) findStories(ctx context.Context, mode workflow.Mode, headlines, research string) (raw string, fallbackUsed bool, err error) {
	in := prompt.Inputs{Headlines: headlines, Context: research}

	if s.search != nil && s.search.IsConfigured() {
		query, err := prompt.Build(prompt.KindRadarSearch, mode, in)
		if err != nil {
			return "", false, err
		}
		raw, err := s.search.Search(ctx, query)
		if err == nil {
			return raw, false, nil
		}
		log.Printf("search failed, using generative fallback: %v", err)
	} else {
		log.Printf("search provider not configured, using generative fallback")
	}

	fallbackPrompt, err := prompt.Build(prompt.KindRadarFallback, mode, in)
	if err != nil {
		return "", false, err
	}
	raw, err = s.gen.Generate(ctx, fallbackPrompt, prompt.System(prompt.KindRadarFallback, mode))
	if err != nil {
		return "", false, fmt.Errorf("generative fallback: %w", err)
	}
	return raw, true, nil
}
