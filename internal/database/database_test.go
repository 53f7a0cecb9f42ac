package database

import (
	"path/filepath"
	"testing"

	"github.com/gfpd/contentengine/internal/workflow"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestKVStoreRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if _, ok, err := db.GetValue("missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := db.SetValue("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetValue("k", "v2"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, ok, err := db.GetValue("k")
	if err != nil || !ok || got != "v2" {
		t.Fatalf("got %q ok=%v err=%v, want v2", got, ok, err)
	}

	if err := db.DeleteValue("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := db.GetValue("k"); ok {
		t.Fatal("key still present after delete")
	}
}

func TestStateRoundTrip(t *testing.T) {
	db := openTestDB(t)

	s := workflow.NewState()
	s.SelectStory(workflow.StoryCard{ID: "story-1", Title: "Raptor 3 static fire"})

	if err := db.SaveState(s); err != nil {
		t.Fatal(err)
	}

	loaded := db.LoadState()
	if loaded.CurrentPhase != workflow.PhaseBriefing {
		t.Errorf("phase = %q, want briefing", loaded.CurrentPhase)
	}
	if loaded.SelectedStory == nil || loaded.SelectedStory.ID != "story-1" {
		t.Errorf("selected story not restored: %+v", loaded.SelectedStory)
	}
}

func TestLoadStateMissingReturnsInitial(t *testing.T) {
	db := openTestDB(t)

	s := db.LoadState()
	if s.CurrentPhase != workflow.PhaseRadar {
		t.Errorf("phase = %q, want radar", s.CurrentPhase)
	}
	if s.SchemaVersion != workflow.SchemaVersion {
		t.Errorf("schema version = %d", s.SchemaVersion)
	}
}

func TestLoadStateCorruptFallsBack(t *testing.T) {
	db := openTestDB(t)

	if err := db.SetValue("gfpd-workflow-state", "{not json"); err != nil {
		t.Fatal(err)
	}
	if s := db.LoadState(); s.CurrentPhase != workflow.PhaseRadar {
		t.Errorf("corrupt state should fall back to initial, got phase %q", s.CurrentPhase)
	}

	if err := db.SetValue("gfpd-workflow-state", `{"schemaVersion":99,"currentPhase":"script"}`); err != nil {
		t.Fatal(err)
	}
	if s := db.LoadState(); s.CurrentPhase != workflow.PhaseRadar {
		t.Errorf("unknown schema version should fall back, got phase %q", s.CurrentPhase)
	}
}

func TestClearState(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveState(workflow.NewState()); err != nil {
		t.Fatal(err)
	}
	if err := db.ClearState(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := db.GetValue("gfpd-workflow-state"); ok {
		t.Fatal("state still stored after clear")
	}
}

func TestModePreference(t *testing.T) {
	db := openTestDB(t)

	if got := db.LoadMode(workflow.ModeLowkey); got != workflow.ModeLowkey {
		t.Errorf("default mode = %q", got)
	}

	if err := db.SaveMode(workflow.ModeHype); err != nil {
		t.Fatal(err)
	}
	if got := db.LoadMode(workflow.ModeLowkey); got != workflow.ModeHype {
		t.Errorf("mode = %q, want hype", got)
	}

	if err := db.SetValue("gfpd-settings", `{"mode":"chaotic"}`); err != nil {
		t.Fatal(err)
	}
	if got := db.LoadMode(workflow.ModeLowkey); got != workflow.ModeLowkey {
		t.Errorf("invalid stored mode should fall back, got %q", got)
	}
}

func TestScriptArchive(t *testing.T) {
	db := openTestDB(t)

	id, err := db.InsertScript("Starship Flight 9", "lowkey", 1450, "# Script\n\nbody")
	if err != nil {
		t.Fatal(err)
	}

	s, err := db.GetScript(id)
	if err != nil {
		t.Fatal(err)
	}
	if s == nil || s.Title != "Starship Flight 9" || s.WordCount != 1450 {
		t.Errorf("unexpected script: %+v", s)
	}

	if missing, err := db.GetScript(9999); err != nil || missing != nil {
		t.Errorf("missing script: %+v, %v", missing, err)
	}

	if _, err := db.InsertScript("Second", "hype", 900, "body"); err != nil {
		t.Fatal(err)
	}
	all, err := db.GetAllScripts()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Title != "Second" {
		t.Errorf("want newest first, got %+v", all)
	}
}

func TestScanRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if scan, err := db.GetLatestScan(); err != nil || scan != nil {
		t.Fatalf("empty table: %+v, %v", scan, err)
	}

	first := &workflow.RadarScanResponse{
		ScanTimestamp: "2026-08-30T12:00:00Z",
		Stories:       []workflow.StoryCard{{ID: "story-1", Title: "one"}},
	}
	if _, err := db.InsertScan(first); err != nil {
		t.Fatal(err)
	}

	second := &workflow.RadarScanResponse{
		ScanTimestamp: "2026-09-01T09:30:00Z",
		FallbackUsed:  true,
		Stories: []workflow.StoryCard{
			{ID: "story-2", Title: "two", SuitabilityScore: 12},
			{ID: "story-3", Title: "three"},
		},
	}
	if _, err := db.InsertScan(second); err != nil {
		t.Fatal(err)
	}

	latest, err := db.GetLatestScan()
	if err != nil {
		t.Fatal(err)
	}
	if latest.ScanTimestamp != second.ScanTimestamp {
		t.Errorf("timestamp = %q", latest.ScanTimestamp)
	}
	if !latest.FallbackUsed {
		t.Error("fallback flag lost")
	}
	if len(latest.Stories) != 2 || latest.Stories[0].SuitabilityScore != 12 {
		t.Errorf("stories not restored: %+v", latest.Stories)
	}
}
