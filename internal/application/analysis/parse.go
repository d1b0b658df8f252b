package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coralpitch/pitchdeck/internal/domain/ai"
	"github.com/coralpitch/pitchdeck/internal/domain/pitch"
)

// ParseRaw extracts the JSON object from the analysis service response and
// unmarshals it. Models occasionally wrap the object in markdown fences or
// prose; everything outside the outermost braces is discarded. A response
// with no parseable object is fatal for the request.
func ParseRaw(text string) (*pitch.RawAnalysis, error) {
	cleaned := strings.TrimSpace(text)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in response", ai.ErrAnalysisParse)
	}

	var raw pitch.RawAnalysis
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrAnalysisParse, err)
	}
	return &raw, nil
}
