package pitch

// PitchType identifies how the pitch content was delivered
type PitchType string

const (
	TypeText  PitchType = "text"
	TypeAudio PitchType = "audio"
	TypeVideo PitchType = "video"
)

// PitchInput is one pitch submission. Built once per request and never mutated.
type PitchInput struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Industry      string    `json:"industry,omitempty"`
	TargetMarket  string    `json:"targetMarket,omitempty"`
	BusinessModel string    `json:"businessModel,omitempty"`
	FundingAmount string    `json:"fundingAmount,omitempty"`
	PitchType     PitchType `json:"pitchType"`
	Content       string    `json:"pitch,omitempty"`
	MediaRef      string    `json:"-"` // local path or URL, empty when text-only
	LanguageCode  string    `json:"languageCode,omitempty"`
}

// HasMedia reports whether a media resource was supplied with the pitch.
func (p PitchInput) HasMedia() bool { return p.MediaRef != "" }

// TranscriptionResult is the outcome of one transcription attempt. A failed
// attempt is still a valid value: Success is false, Transcription is empty and
// Err carries the cause for logging. Callers decide whether to degrade or abort.
type TranscriptionResult struct {
	Success       bool   `json:"success"`
	Transcription string `json:"transcription"`
	FilePath      string `json:"file_path"`
	IsVideo       bool   `json:"is_video"`
	Err           error  `json:"-"`
}

// CategoryScores is the fixed, closed set of sub-scores. No keys are added at
// runtime; unknown keys in a service response are dropped.
type CategoryScores struct {
	MarketOpportunity  int `json:"marketOpportunity"`
	BusinessModel      int `json:"businessModel"`
	Presentation       int `json:"presentation"`
	FinancialViability int `json:"financialViability"`
	Innovation         int `json:"innovation"`
}

type Feedback struct {
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
}

type MarketAnalysis struct {
	Size        string   `json:"size"`
	Growth      string   `json:"growth"`
	Competition string   `json:"competition"`
	Trends      []string `json:"trends"`
}

// VoiceAnalysis is populated only when a media pitch was transcribed successfully.
type VoiceAnalysis struct {
	Clarity     int      `json:"clarity"`
	Pace        int      `json:"pace"`
	Confidence  int      `json:"confidence"`
	Suggestions []string `json:"suggestions"`
}

// AnalysisResult is the scored evaluation of one pitch. Immutable after the
// aggregator builds it; the caller owns persistence.
type AnalysisResult struct {
	ID             string         `json:"id"`
	PitchID        string         `json:"pitchId"`
	OverallScore   int            `json:"overallScore"`
	CategoryScores CategoryScores `json:"categoryScores"`
	Feedback       Feedback       `json:"feedback"`
	Response       string         `json:"response"`
	Keynotes       []string       `json:"keynotes"`
	MarketAnalysis MarketAnalysis `json:"marketAnalysis"`
	VoiceAnalysis  *VoiceAnalysis `json:"voiceAnalysis,omitempty"`
	NFTEligible    bool           `json:"nftEligible"`
	CreatedAt      string         `json:"createdAt"`
	AgentsUsed     []string       `json:"agentsUsed"`
}
