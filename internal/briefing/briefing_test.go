package briefing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gfpd/contentengine/internal/knowledge"
	"github.com/gfpd/contentengine/internal/workflow"
)

type fakeGen struct {
	response   string
	err        error
	configured bool
	lastPrompt string
}

func (f *fakeGen) Generate(_ context.Context, prompt, _ string) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeGen) IsConfigured() bool { return f.configured }

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

const briefingJSON = `{"technicalPillars": {
	"hardwareData": "350 bar chamber pressure",
	"politicalContext": "Artemis schedule pressure",
	"retroParallel": "F-1 combustion instability campaign",
	"realityCheck": "single test article so far"
}}`

func TestBuild(t *testing.T) {
	gen := &fakeGen{response: briefingJSON, configured: true}
	b := NewBuilder(gen, testLibrary(t), 0)

	story := workflow.StoryCard{ID: "story-1", Title: "Raptor 3"}
	out, err := b.Build(context.Background(), story, workflow.ModeLowkey)
	if err != nil {
		t.Fatal(err)
	}
	if out.StoryID != "story-1" {
		t.Errorf("story ID = %q", out.StoryID)
	}
	if out.TechnicalPillars.RetroParallel == "" {
		t.Error("pillars not populated")
	}
}

func TestBuildRejectsStoryWithoutID(t *testing.T) {
	b := NewBuilder(&fakeGen{configured: true}, testLibrary(t), 0)
	if _, err := b.Build(context.Background(), workflow.StoryCard{}, workflow.ModeLowkey); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestBuildSurfacesGenerationFailure(t *testing.T) {
	gen := &fakeGen{err: errors.New("overloaded"), configured: true}
	b := NewBuilder(gen, testLibrary(t), 0)
	if _, err := b.Build(context.Background(), workflow.StoryCard{ID: "s"}, workflow.ModeLowkey); err == nil {
		t.Fatal("expected generation error to surface")
	}
}

func TestBuildMissingPillars(t *testing.T) {
	gen := &fakeGen{response: `{"technicalPillars": {}}`, configured: true}
	b := NewBuilder(gen, testLibrary(t), 0)
	if _, err := b.Build(context.Background(), workflow.StoryCard{ID: "s"}, workflow.ModeLowkey); err == nil {
		t.Fatal("expected missing-pillars error")
	}
}

func TestFetchAllSkipsFailures(t *testing.T) {
	body := "<html><body><article><p>" + strings.Repeat("Chamber pressure reached 350 bar during the test. ", 10) + "</p></article></body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	f := newSourceFetcher(0)
	extracts := f.fetchAll(context.Background(), []workflow.SourceURL{
		{URL: srv.URL + "/bad", Title: "Dead link", Category: "context"},
		{URL: srv.URL + "/good", Title: "Test report", Category: "primary"},
	})

	if !strings.Contains(extracts, "Test report") {
		t.Errorf("good source missing from extracts: %q", extracts)
	}
	if strings.Contains(extracts, "Dead link") {
		t.Error("failed source included in extracts")
	}
}

func TestFetchAllCapsSourceCount(t *testing.T) {
	body := "<html><body><article><p>" + strings.Repeat("Thrust was 280 tonnes-force at sea level during the campaign. ", 10) + "</p></article></body></html>"
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(body))
	}))
	defer srv.Close()

	sources := make([]workflow.SourceURL, 5)
	for i := range sources {
		sources[i] = workflow.SourceURL{URL: srv.URL, Title: "src", Category: "technical"}
	}

	newSourceFetcher(0).fetchAll(context.Background(), sources)
	if hits != maxSources {
		t.Errorf("fetched %d sources, want %d", hits, maxSources)
	}
}

func TestFetchAllEmpty(t *testing.T) {
	got := newSourceFetcher(0).fetchAll(context.Background(), nil)
	if got != "(no source extracts available)" {
		t.Errorf("got %q", got)
	}
}
