package pitch

import "errors"

// DefaultNFTThreshold is the overall score at which a pitch qualifies for the
// downstream NFT reward gate. Deployments override it via config.
const DefaultNFTThreshold = 70

// ErrScoreMissing means the analysis service response carried no usable
// overall score. This is the one required scalar; everything else is
// back-filled with defaults.
var ErrScoreMissing = errors.New("overall score missing or non-numeric")

// RawAnalysis mirrors the JSON schema the analysis service is asked to
// produce. Pointers and maps distinguish "absent" from zero values so the
// normalizer can back-fill.
type RawAnalysis struct {
	OverallScore   *float64           `json:"overallScore"`
	CategoryScores map[string]float64 `json:"categoryScores"`
	Feedback       *RawFeedback       `json:"feedback"`
	Response       string             `json:"response"`
	Keynotes       []string           `json:"keynotes"`
	MarketAnalysis *RawMarket         `json:"marketAnalysis"`
	VoiceAnalysis  *RawVoice          `json:"voiceAnalysis"`
	NFTEligible    *bool              `json:"nftEligible"`
}

type RawFeedback struct {
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
}

type RawMarket struct {
	Size        string   `json:"size"`
	Growth      string   `json:"growth"`
	Competition string   `json:"competition"`
	Trends      []string `json:"trends"`
}

type RawVoice struct {
	Clarity     float64  `json:"clarity"`
	Pace        float64  `json:"pace"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions"`
}

// Normalize validates a raw service response and back-fills every missing
// optional field with an empty default, so a partially complete response still
// yields a structurally valid result. It fails only on a missing overall
// score. The service's own nftEligible suggestion is ignored; eligibility is
// recomputed from the threshold.
func Normalize(raw *RawAnalysis) (*AnalysisResult, error) {
	if raw == nil || raw.OverallScore == nil {
		return nil, ErrScoreMissing
	}

	out := &AnalysisResult{
		OverallScore: clampScore(*raw.OverallScore),
		Response:     raw.Response,
		Keynotes:     emptyIfNil(raw.Keynotes),
		Feedback: Feedback{
			Strengths:       []string{},
			Improvements:    []string{},
			Recommendations: []string{},
		},
		MarketAnalysis: MarketAnalysis{Trends: []string{}},
	}

	for key, v := range raw.CategoryScores {
		score := clampScore(v)
		switch key {
		case "marketOpportunity":
			out.CategoryScores.MarketOpportunity = score
		case "businessModel":
			out.CategoryScores.BusinessModel = score
		case "presentation":
			out.CategoryScores.Presentation = score
		case "financialViability":
			out.CategoryScores.FinancialViability = score
		case "innovation":
			out.CategoryScores.Innovation = score
		}
	}

	if raw.Feedback != nil {
		out.Feedback.Strengths = emptyIfNil(raw.Feedback.Strengths)
		out.Feedback.Improvements = emptyIfNil(raw.Feedback.Improvements)
		out.Feedback.Recommendations = emptyIfNil(raw.Feedback.Recommendations)
	}
	if raw.MarketAnalysis != nil {
		out.MarketAnalysis.Size = raw.MarketAnalysis.Size
		out.MarketAnalysis.Growth = raw.MarketAnalysis.Growth
		out.MarketAnalysis.Competition = raw.MarketAnalysis.Competition
		out.MarketAnalysis.Trends = emptyIfNil(raw.MarketAnalysis.Trends)
	}

	return out, nil
}

// VoiceFromRaw converts the service's voice metrics. A nil raw value yields an
// empty-but-present VoiceAnalysis, used when a transcript was analyzed but the
// service returned no metrics.
func VoiceFromRaw(raw *RawVoice) *VoiceAnalysis {
	if raw == nil {
		return &VoiceAnalysis{Suggestions: []string{}}
	}
	return &VoiceAnalysis{
		Clarity:     clampScore(raw.Clarity),
		Pace:        clampScore(raw.Pace),
		Confidence:  clampScore(raw.Confidence),
		Suggestions: emptyIfNil(raw.Suggestions),
	}
}

// NFTEligible applies the deterministic score gate.
func NFTEligible(score, threshold int) bool { return score >= threshold }

func clampScore(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v)
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
