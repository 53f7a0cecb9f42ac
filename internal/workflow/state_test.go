package workflow

import (
	"encoding/json"
	"testing"
)

func sampleStory(id string) StoryCard {
	return StoryCard{
		ID:               id,
		Title:            "Raptor 3 hits 350 bar in static fire",
		Timestamp:        "2026-08-30T12:00:00Z",
		SuitabilityScore: 12,
		HardwareData: HardwareData{
			PrimaryHardware: "Raptor 3",
			Agency:          "SpaceX",
			TechnicalSpecs:  []string{"350 bar chamber pressure"},
			KeyMetrics:      map[string]string{"thrust": "280 tf"},
		},
		SourceUrls: []SourceURL{{URL: "https://example.com/raptor", Title: "Raptor test", Category: "primary"}},
		Summary:    "SpaceX pushed Raptor 3 past its rated chamber pressure.",
	}
}

func populatedState() *State {
	s := NewState()
	s.SelectStory(sampleStory("story-1"))
	s.SetBriefing(Briefing{StoryID: "story-1"})
	s.SetPackaging(PackagingResult{Titles: []TitleOption{{ID: "title-1", Title: "Raptor 3: The 350 Bar Problem"}}})
	s.SelectTitle(TitleOption{ID: "title-1", Title: "Raptor 3: The 350 Bar Problem"})
	s.SetHookResult(HookResult{Hooks: []HookVariation{{ID: "hardware", Content: "350 bar."}}})
	s.SelectHook(HookVariation{ID: "hardware", Content: "350 bar."})
	s.SetOutline(ScriptOutline{Hook: "350 bar.", Phases: []ScriptPhase{{ID: "phase1", EstimatedWords: 400}}, TotalEstimatedWords: 400})
	s.SetScript(GeneratedScript{Segments: []ScriptSegment{{PhaseID: "phase1", Content: "text", WordCount: 1}}, TotalWordCount: 1})
	return s
}

func TestInitialState(t *testing.T) {
	s := NewState()
	if s.CurrentPhase != PhaseRadar {
		t.Errorf("expected initial phase radar, got %s", s.CurrentPhase)
	}
	if s.SchemaVersion != SchemaVersion {
		t.Errorf("expected schema version %d, got %d", SchemaVersion, s.SchemaVersion)
	}
	if s.SelectedStory != nil || s.Script != nil {
		t.Error("expected all fields nil initially")
	}
}

func TestSelectStoryClearsDownstream(t *testing.T) {
	s := populatedState()
	s.SelectStory(sampleStory("story-2"))

	if s.CurrentPhase != PhaseBriefing {
		t.Errorf("expected phase briefing, got %s", s.CurrentPhase)
	}
	if s.SelectedStory == nil || s.SelectedStory.ID != "story-2" {
		t.Fatal("expected story-2 selected")
	}
	if s.Briefing != nil || s.Packaging != nil || s.SelectedTitle != nil ||
		s.HookResult != nil || s.SelectedHook != nil || s.Outline != nil || s.Script != nil {
		t.Error("expected all downstream fields cleared after story selection")
	}
}

func TestSelectTitleClearsDownstream(t *testing.T) {
	s := populatedState()
	s.SelectTitle(TitleOption{ID: "title-2", Title: "RS-25 Restart Costs"})

	if s.CurrentPhase != PhaseHook {
		t.Errorf("expected phase hook, got %s", s.CurrentPhase)
	}
	if s.HookResult != nil || s.SelectedHook != nil || s.Outline != nil || s.Script != nil {
		t.Error("expected hook/outline/script cleared after title selection")
	}
	// Upstream survives.
	if s.SelectedStory == nil || s.Briefing == nil || s.Packaging == nil {
		t.Error("expected upstream fields untouched")
	}
}

func TestSelectHookClearsOutlineAndScript(t *testing.T) {
	s := populatedState()
	s.SelectHook(HookVariation{ID: "geopolitical", Content: "Congress cut the line item."})

	if s.CurrentPhase != PhaseOutline {
		t.Errorf("expected phase outline, got %s", s.CurrentPhase)
	}
	if s.Outline != nil || s.Script != nil {
		t.Error("expected outline and script cleared after hook selection")
	}
	if s.HookResult == nil {
		t.Error("expected hook result untouched")
	}
}

// Downstream fields must never be non-nil while their direct upstream
// selection is nil, for any transition sequence.
func TestInvalidationInvariant(t *testing.T) {
	s := populatedState()
	s.SelectStory(sampleStory("story-3"))
	s.SetPackaging(PackagingResult{})
	s.SelectTitle(TitleOption{ID: "t"})
	s.SelectStory(sampleStory("story-4"))

	if s.SelectedTitle != nil {
		t.Error("selectedTitle survived a story replacement")
	}
	if s.SelectedHook != nil || s.Outline != nil || s.Script != nil {
		t.Error("deep downstream fields survived a story replacement")
	}
}

func TestSetPhaseDoesNotClear(t *testing.T) {
	s := populatedState()
	s.SetPhase(PhaseRadar)
	if s.CurrentPhase != PhaseRadar {
		t.Errorf("expected phase radar, got %s", s.CurrentPhase)
	}
	if s.Script == nil || s.Outline == nil {
		t.Error("manual navigation must not clear fields")
	}
}

func TestReset(t *testing.T) {
	s := populatedState()
	s.Reset()
	if s.CurrentPhase != PhaseRadar {
		t.Errorf("expected phase radar after reset, got %s", s.CurrentPhase)
	}
	if s.SelectedStory != nil || s.Briefing != nil || s.Packaging != nil ||
		s.SelectedTitle != nil || s.HookResult != nil || s.SelectedHook != nil ||
		s.Outline != nil || s.Script != nil {
		t.Error("expected all fields nil after reset")
	}
}

func TestCanAdvance(t *testing.T) {
	s := NewState()
	if !s.CanAdvance(PhaseRadar) {
		t.Error("radar must always be reachable")
	}
	if s.CanAdvance(PhaseBriefing) || s.CanAdvance(PhaseHook) || s.CanAdvance(PhaseOutline) || s.CanAdvance(PhaseScript) {
		t.Error("no forward phase should be reachable from an empty state")
	}

	s.SelectStory(sampleStory("story-1"))
	if !s.CanAdvance(PhaseBriefing) || !s.CanAdvance(PhasePackaging) {
		t.Error("briefing and packaging require only a selected story")
	}
	if s.CanAdvance(PhaseHook) {
		t.Error("hook requires a selected title")
	}

	s.SelectTitle(TitleOption{ID: "title-1"})
	if !s.CanAdvance(PhaseHook) {
		t.Error("hook should be reachable after title selection")
	}
	if s.CanAdvance(PhaseOutline) {
		t.Error("outline requires a selected hook")
	}

	s.SelectHook(HookVariation{ID: "hardware"})
	if !s.CanAdvance(PhaseOutline) {
		t.Error("outline should be reachable after hook selection")
	}
	if s.CanAdvance(PhaseScript) {
		t.Error("script requires an outline")
	}

	s.SetOutline(ScriptOutline{})
	if !s.CanAdvance(PhaseScript) {
		t.Error("script should be reachable after outline")
	}
}

func TestCanAdvanceIsPure(t *testing.T) {
	s := populatedState()
	before, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, p := range []Phase{PhaseRadar, PhaseBriefing, PhasePackaging, PhaseHook, PhaseOutline, PhaseScript} {
		s.CanAdvance(p)
	}
	after, _ := json.Marshal(s)
	if string(before) != string(after) {
		t.Error("CanAdvance mutated the state")
	}
}

func TestStateRoundTrip(t *testing.T) {
	s := populatedState()
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored := &State{}
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	again, _ := json.Marshal(restored)
	if string(data) != string(again) {
		t.Error("state did not survive a serialize/deserialize round trip")
	}
	if restored.CurrentPhase != s.CurrentPhase {
		t.Errorf("phase mismatch: %s vs %s", restored.CurrentPhase, s.CurrentPhase)
	}
}
