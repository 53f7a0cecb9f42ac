package workflow

// SchemaVersion is stamped into serialized state so future layout changes can
// be detected on load.
const SchemaVersion = 1

// State is the single source of truth for the content workflow: which phase is
// active and what has been produced so far. Every field that depends on an
// upstream selection is nil whenever that selection is nil or has been
// replaced. State carries no storage dependency; callers persist it explicitly
// after successful transitions.
type State struct {
	SchemaVersion int   `json:"schemaVersion"`
	CurrentPhase  Phase `json:"currentPhase"`

	SelectedStory *StoryCard       `json:"selectedStory"`
	Briefing      *Briefing        `json:"briefing"`
	Packaging     *PackagingResult `json:"packaging"`
	SelectedTitle *TitleOption     `json:"selectedTitle"`
	HookResult    *HookResult      `json:"hookResult"`
	SelectedHook  *HookVariation   `json:"selectedHook"`
	Outline       *ScriptOutline   `json:"outline"`
	Script        *GeneratedScript `json:"script"`
}

// NewState returns the initial workflow state.
func NewState() *State {
	return &State{
		SchemaVersion: SchemaVersion,
		CurrentPhase:  PhaseRadar,
	}
}

// SelectStory records the chosen story, advances to the briefing phase and
// invalidates everything downstream.
func (s *State) SelectStory(story StoryCard) {
	s.SelectedStory = &story
	s.CurrentPhase = PhaseBriefing
	s.Briefing = nil
	s.Packaging = nil
	s.SelectedTitle = nil
	s.HookResult = nil
	s.SelectedHook = nil
	s.Outline = nil
	s.Script = nil
}

// SetBriefing stores the briefing without changing phase.
func (s *State) SetBriefing(b Briefing) {
	s.Briefing = &b
}

// SetPackaging stores the packaging result and advances to the packaging
// phase.
func (s *State) SetPackaging(p PackagingResult) {
	s.Packaging = &p
	s.CurrentPhase = PhasePackaging
}

// SelectTitle records the chosen title, advances to the hook phase and
// invalidates everything downstream of the title.
func (s *State) SelectTitle(title TitleOption) {
	s.SelectedTitle = &title
	s.CurrentPhase = PhaseHook
	s.HookResult = nil
	s.SelectedHook = nil
	s.Outline = nil
	s.Script = nil
}

// SetHookResult stores generated hook variations without changing phase.
func (s *State) SetHookResult(r HookResult) {
	s.HookResult = &r
}

// SelectHook records the chosen hook, advances to the outline phase and
// invalidates the outline and script.
func (s *State) SelectHook(hook HookVariation) {
	s.SelectedHook = &hook
	s.CurrentPhase = PhaseOutline
	s.Outline = nil
	s.Script = nil
}

// SetOutline stores the outline and advances to the script phase.
func (s *State) SetOutline(o ScriptOutline) {
	s.Outline = &o
	s.CurrentPhase = PhaseScript
}

// SetScript stores the generated script without changing phase.
func (s *State) SetScript(sc GeneratedScript) {
	s.Script = &sc
}

// SetPhase navigates to a phase without clearing any fields. Prerequisites are
// deliberately not enforced here; callers that move forward consult CanAdvance
// first, and backward navigation to completed phases is always free.
func (s *State) SetPhase(p Phase) {
	s.CurrentPhase = p
}

// Reset returns the state to its initial value.
func (s *State) Reset() {
	*s = *NewState()
}

// CanAdvance reports whether the prerequisite selection for the target phase
// is present. It is a pure predicate and never mutates the state.
func (s *State) CanAdvance(to Phase) bool {
	switch to {
	case PhaseRadar:
		return true
	case PhaseBriefing, PhasePackaging:
		return s.SelectedStory != nil
	case PhaseHook:
		return s.SelectedTitle != nil
	case PhaseOutline:
		return s.SelectedHook != nil
	case PhaseScript:
		return s.Outline != nil
	default:
		return false
	}
}
