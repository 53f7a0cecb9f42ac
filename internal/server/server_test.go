package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gfpd/contentengine/internal/database"
	"github.com/gfpd/contentengine/internal/workflow"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestIndexRoute(t *testing.T) {
	db := openTestDB(t)
	db.InsertScript("Raptor 3 Hits 350 Bar", "lowkey", 1450, "# Script\n\nBody.")

	srv, err := New(db)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Raptor 3 Hits 350 Bar") {
		t.Error("expected archived script title in response body")
	}
	if !strings.Contains(body, "radar") {
		t.Error("expected current phase in response body")
	}
}

func TestIndexEmpty(t *testing.T) {
	srv, err := New(openTestDB(t))
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No scripts archived yet") {
		t.Error("expected empty-state message")
	}
}

func TestScriptRoute(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.InsertScript("The 350 Bar Problem", "lowkey", 1300, "# The 350 Bar Problem\n\n## Hardware\n\nChamber pressure data.")

	srv, err := New(db)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/script/"+strconv.FormatInt(id, 10), nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	// Markdown body rendered to HTML.
	if !strings.Contains(body, "<h2") || !strings.Contains(body, "Chamber pressure data.") {
		t.Error("expected rendered markdown in response")
	}
}

func TestScriptRouteNotFound(t *testing.T) {
	srv, err := New(openTestDB(t))
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/script/9999", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestStateRoute(t *testing.T) {
	db := openTestDB(t)
	state := workflow.NewState()
	state.SelectStory(workflow.StoryCard{ID: "story-1", Title: "Raptor 3"})
	if err := db.SaveState(state); err != nil {
		t.Fatal(err)
	}

	srv, err := New(db)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/state.json", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var got workflow.State
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("state endpoint returned invalid JSON: %v", err)
	}
	if got.CurrentPhase != workflow.PhaseBriefing || got.SelectedStory == nil {
		t.Errorf("unexpected state: %+v", got)
	}
}

func TestStaticRoute(t *testing.T) {
	srv, err := New(openTestDB(t))
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/static/style.css", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "--accent") {
		t.Error("expected CSS content")
	}
}
