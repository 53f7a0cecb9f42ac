package radar

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gfpd/contentengine/internal/knowledge"
	"github.com/gfpd/contentengine/internal/workflow"
)

type fakeGen struct {
	response   string
	err        error
	configured bool
	prompts    []string
}

func (f *fakeGen) Generate(_ context.Context, prompt, _ string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeGen) IsConfigured() bool { return f.configured }

type fakeSearch struct {
	response   string
	err        error
	configured bool
	calls      int
}

func (f *fakeSearch) Search(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeSearch) IsConfigured() bool { return f.configured }

func testLibrary(t *testing.T) *knowledge.Library {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{knowledge.DocTechnical, knowledge.DocRetro} {
		if err := os.WriteFile(filepath.Join(dir, name+".txt"), []byte("guidance"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return knowledge.NewLibrary(dir)
}

const storiesJSON = `{"stories": [
	{"title": "Raptor 3 hits 350 bar", "suitabilityScore": 13,
	 "hardwareData": {"primaryHardware": "Raptor 3", "agency": "SpaceX"}},
	{"id": "story-fixed", "title": "New Glenn scrub", "suitabilityScore": 8,
	 "hardwareData": {"primaryHardware": "BE-4", "agency": "Blue Origin"}}
]}`

func TestScanWithSearch(t *testing.T) {
	gen := &fakeGen{response: storiesJSON, configured: true}
	search := &fakeSearch{response: "raw search results", configured: true}

	scanner := NewScanner(gen, search, testLibrary(t), nil, 7)
	scan, err := scanner.Scan(context.Background(), workflow.ModeLowkey)
	if err != nil {
		t.Fatal(err)
	}

	if scan.FallbackUsed {
		t.Error("fallback flagged although search succeeded")
	}
	if search.calls != 1 {
		t.Errorf("search called %d times", search.calls)
	}
	if len(scan.Stories) != 2 {
		t.Fatalf("got %d stories", len(scan.Stories))
	}
	if scan.Stories[0].ID == "" || !strings.HasPrefix(scan.Stories[0].ID, "story-") {
		t.Errorf("missing ID not backfilled: %q", scan.Stories[0].ID)
	}
	if scan.Stories[1].ID != "story-fixed" {
		t.Errorf("existing ID overwritten: %q", scan.Stories[1].ID)
	}
	if scan.ScanTimestamp == "" {
		t.Error("scan timestamp not set")
	}
}

func TestScanSearchFailureUsesFallback(t *testing.T) {
	gen := &fakeGen{response: storiesJSON, configured: true}
	search := &fakeSearch{err: errors.New("rate limited"), configured: true}

	scanner := NewScanner(gen, search, testLibrary(t), nil, 7)
	scan, err := scanner.Scan(context.Background(), workflow.ModeHype)
	if err != nil {
		t.Fatalf("search failure must be recovered, got %v", err)
	}
	if !scan.FallbackUsed {
		t.Error("fallback not recorded")
	}
	// fallback generation + structuring call
	if len(gen.prompts) != 2 {
		t.Errorf("generate called %d times, want 2", len(gen.prompts))
	}
}

func TestScanUnconfiguredSearchUsesFallback(t *testing.T) {
	gen := &fakeGen{response: storiesJSON, configured: true}
	search := &fakeSearch{configured: false}

	scanner := NewScanner(gen, search, testLibrary(t), nil, 7)
	scan, err := scanner.Scan(context.Background(), workflow.ModeLowkey)
	if err != nil {
		t.Fatal(err)
	}
	if !scan.FallbackUsed {
		t.Error("fallback not recorded")
	}
	if search.calls != 0 {
		t.Error("unconfigured search was called")
	}
}

func TestScanMalformedResponse(t *testing.T) {
	gen := &fakeGen{response: "I could not find any stories today.", configured: true}
	search := &fakeSearch{response: "raw", configured: true}

	scanner := NewScanner(gen, search, testLibrary(t), nil, 7)
	if _, err := scanner.Scan(context.Background(), workflow.ModeLowkey); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestScanInvalidMode(t *testing.T) {
	scanner := NewScanner(&fakeGen{configured: true}, nil, testLibrary(t), nil, 7)
	if _, err := scanner.Scan(context.Background(), workflow.Mode("chaotic")); err == nil {
		t.Fatal("expected invalid mode error")
	}
}

func TestHeadlineText(t *testing.T) {
	got := headlineText([]Headline{
		{Title: "Starship flight 9", Source: "NSF", PublishedDate: "2026-08-30"},
		{Title: "Vulcan update", Source: "ULA"},
	})
	want := "- Starship flight 9 (NSF, 2026-08-30)\n- Vulcan update (ULA)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWithinWindow(t *testing.T) {
	cutoff, err := time.Parse("2006-01-02", "2026-08-25")
	if err != nil {
		t.Fatal(err)
	}
	if !withinWindow("", cutoff) {
		t.Error("missing date should pass")
	}
	if !withinWindow("2026-08-26", cutoff) {
		t.Error("recent date should pass")
	}
	if withinWindow("2026-08-20", cutoff) {
		t.Error("stale date should be filtered")
	}
}
