package workflow

// Mode selects which prompt persona and scoring rubric applies to every
// generation step.
type Mode string

const (
	ModeHype   Mode = "hype"
	ModeLowkey Mode = "lowkey"
)

// Valid reports whether m is a known content mode.
func (m Mode) Valid() bool {
	return m == ModeHype || m == ModeLowkey
}

// Phase identifies a stage of the content workflow.
type Phase string

const (
	PhaseRadar     Phase = "radar"
	PhaseBriefing  Phase = "briefing"
	PhasePackaging Phase = "packaging"
	PhaseHook      Phase = "hook"
	PhaseOutline   Phase = "outline"
	PhaseScript    Phase = "script"
)

// StoryCard is a candidate news item produced by the radar scan.
// Immutable once produced; selection copies a reference into the State.
type StoryCard struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Timestamp        string       `json:"timestamp"`
	SuitabilityScore int          `json:"suitabilityScore"` // 1-15
	HardwareData     HardwareData `json:"hardwareData"`
	SourceUrls       []SourceURL  `json:"sourceUrls"`
	Summary          string       `json:"summary"`
}

// HardwareData holds the technical core of a story.
type HardwareData struct {
	PrimaryHardware string            `json:"primaryHardware"`
	Agency          string            `json:"agency"`
	TechnicalSpecs  []string          `json:"technicalSpecs"`
	KeyMetrics      map[string]string `json:"keyMetrics"`
}

// SourceURL is a categorized reference backing a story.
type SourceURL struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Category string `json:"category"` // primary | technical | context
}

// Briefing is the intelligence briefing produced for a selected story.
type Briefing struct {
	StoryID          string           `json:"storyId"`
	TechnicalPillars TechnicalPillars `json:"technicalPillars"`
	Sources          []SourceURL      `json:"sources"`
}

// TechnicalPillars are the four analysis angles of a briefing.
type TechnicalPillars struct {
	HardwareData     string `json:"hardwareData"`
	PoliticalContext string `json:"politicalContext"`
	RetroParallel    string `json:"retroParallel"`
	RealityCheck     string `json:"realityCheck"`
}

// PackagingResult bundles title candidates with thumbnail direction.
type PackagingResult struct {
	Titles          []TitleOption   `json:"titles"`
	ThumbnailLayout ThumbnailLayout `json:"thumbnailLayout"`
	MidjourneyPrompt string         `json:"midjourneyPrompt"`
}

// TitleOption is one candidate video title.
type TitleOption struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	EngineeringAnchor string `json:"engineeringAnchor"`
	TechnicalConflict string `json:"technicalConflict"`
}

// ThumbnailLayout is the suggested thumbnail text hierarchy.
type ThumbnailLayout struct {
	PrimaryText   string `json:"primaryText"`
	SecondaryText string `json:"secondaryText"`
	VisualFocus   string `json:"visualFocus"`
}

// HookVariation is one generated opening, with its analysis attached
// immediately after generation.
type HookVariation struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	WordCount int    `json:"wordCount"`

	AnalysisScore  int      `json:"analysisScore"`
	PhrasesFound   []string `json:"phrasesFound"`
	NeedsAttention bool     `json:"needsAttention"`
	Recommendation string   `json:"recommendation"`
}

// HookResult bundles hook variations with the scoring winner.
type HookResult struct {
	Hooks  []HookVariation `json:"hooks"`
	Winner *HookVariation  `json:"winner,omitempty"`
}

// ScriptOutline structures the script into ordered phases.
type ScriptOutline struct {
	Hook                string        `json:"hook"`
	Phases              []ScriptPhase `json:"phases"`
	TotalEstimatedWords int           `json:"totalEstimatedWords"`
}

// ScriptPhase is one section of the planned script.
type ScriptPhase struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	KeyPoints      []string `json:"keyPoints"`
	EstimatedWords int      `json:"estimatedWords"`
}

// ScriptSegment is the generated narration for one phase.
type ScriptSegment struct {
	PhaseID   string `json:"phaseId"`
	Content   string `json:"content"`
	WordCount int    `json:"wordCount"`

	AnalysisScore  int      `json:"analysisScore"`
	PhrasesFound   []string `json:"phrasesFound"`
	NeedsAttention bool     `json:"needsAttention"`
	Recommendation string   `json:"recommendation"`
}

// GeneratedScript aggregates segments in phase order.
type GeneratedScript struct {
	Segments       []ScriptSegment `json:"segments"`
	TotalWordCount int             `json:"totalWordCount"`
	Sources        []SourceURL     `json:"sources"`
}

// RadarScanResponse is the outcome of one radar scan.
type RadarScanResponse struct {
	Stories       []StoryCard `json:"stories"`
	ScanTimestamp string      `json:"scanTimestamp"`
	FallbackUsed  bool        `json:"fallbackUsed"`
}
