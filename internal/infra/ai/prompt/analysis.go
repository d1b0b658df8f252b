package prompt

import (
	"fmt"
	"strings"

	"github.com/coralpitch/pitchdeck/internal/domain/pitch"
)

// AnalysisSystem provides strict directions and persona for the analysis model.
func AnalysisSystem() string {
	return `You are an expert startup pitch analyst and venture capitalist with 15+ years of experience evaluating business opportunities.

Your task is to provide comprehensive, honest, and constructive feedback on startup pitches. You have expertise in:
- Market analysis and competitive landscape assessment
- Business model evaluation and financial viability
- Presentation skills and pitch effectiveness
- Innovation assessment and competitive advantage analysis
- Investment potential and risk assessment

Always respond with one valid JSON object that matches the requested structure (no markdown, no commentary outside the JSON). Be specific, actionable, and professional in your feedback.`
}

// AnalysisUser builds the evaluation request around the pitch metadata and
// transcript. Voice metrics and keynotes are requested only for media pitches.
func AnalysisUser(in pitch.PitchInput, transcript string) string {
	isMedia := in.PitchType == pitch.TypeAudio || in.PitchType == pitch.TypeVideo

	var b strings.Builder
	b.WriteString("Analyze the following startup pitch and provide a comprehensive evaluation in JSON format:\n\n")
	b.WriteString("**PITCH INFORMATION:**\n")
	fmt.Fprintf(&b, "- Title: %s\n", in.Title)
	fmt.Fprintf(&b, "- Description: %s\n", in.Description)
	fmt.Fprintf(&b, "- Industry: %s\n", in.Industry)
	fmt.Fprintf(&b, "- Target Market: %s\n", in.TargetMarket)
	fmt.Fprintf(&b, "- Business Model: %s\n", in.BusinessModel)
	fmt.Fprintf(&b, "- Funding Amount: %s\n", in.FundingAmount)
	fmt.Fprintf(&b, "- Pitch Type: %s\n", in.PitchType)

	b.WriteString("\n**PITCH CONTENT:**\n")
	b.WriteString(in.Content)
	if transcript != "" {
		b.WriteString("\n\n**TRANSCRIPT:**\n")
		b.WriteString(transcript)
	}

	b.WriteString(`

Provide a detailed analysis in the following JSON structure:

{
  "overallScore": (number between 0-100),
  "categoryScores": {
    "marketOpportunity": (number between 0-100),
    "businessModel": (number between 0-100),
    "presentation": (number between 0-100),
    "financialViability": (number between 0-100),
    "innovation": (number between 0-100)
  },
  "feedback": {
    "strengths": (array of 3-5 key strengths),
    "improvements": (array of 2-4 areas for improvement),
    "recommendations": (array of 3-5 specific recommendations)
  },
  "response": (string - comprehensive feedback for the presenter, 3-5 sentences in English),
  "marketAnalysis": {
    "size": (estimated market size),
    "growth": (market growth rate),
    "competition": (competition level: Low/Moderate/High),
    "trends": (array of 3-5 key market trends)
  }`)
	if isMedia {
		b.WriteString(`,
  "keynotes": (array of 3-5 key points that were effectively communicated),
  "voiceAnalysis": {
    "clarity": (number between 0-100),
    "pace": (number between 0-100),
    "confidence": (number between 0-100),
    "suggestions": (array of 2-4 delivery suggestions)
  }`)
	}
	b.WriteString(`
}

Provide realistic scores based on the pitch content quality and completeness.`)

	return b.String()
}
