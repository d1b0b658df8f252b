package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coralpitch/pitchdeck/internal/application"
	"github.com/coralpitch/pitchdeck/internal/domain/ai"
	"github.com/coralpitch/pitchdeck/internal/domain/pitch"
	"github.com/coralpitch/pitchdeck/internal/infra/ai/prompt"
	"github.com/coralpitch/pitchdeck/internal/logger"
)

// Transcriber is the slice of the transcription service the aggregator needs.
type Transcriber interface {
	Transcribe(ctx context.Context, ref, languageCode string) (pitch.TranscriptionResult, error)
}

// Service implements the pitch-analysis aggregation workflow: optional
// transcription, one analysis call, normalization, stamping. Safe for
// concurrent use; each request owns its own inputs and results.
type Service struct {
	Transcriber  Transcriber
	Analyzer     ai.Analyzer
	Repo         pitch.Repository // nil disables history persistence
	Clock        application.Clock
	NFTThreshold int
	Log          *logger.Logger
}

// Result bundles the analysis with the transcription outcome, when media was
// part of the request.
type Result struct {
	Analysis      *pitch.AnalysisResult
	Transcription *pitch.TranscriptionResult
}

// Analyze runs the full workflow for one pitch. Transcription failures
// degrade (empty transcript, no voice analysis); parse and service failures
// abort. No retries anywhere.
func (s *Service) Analyze(ctx context.Context, in pitch.PitchInput) (*Result, error) {
	if in.ID == "" {
		in.ID = fmt.Sprintf("pitch_%d", s.Clock.Now().Unix())
	}
	log := s.Log.WithModule("analysis").WithField("pitch_id", in.ID)

	transcript := ""
	voiceAnalyzed := false
	var tr *pitch.TranscriptionResult

	if in.HasMedia() {
		got, err := s.Transcriber.Transcribe(ctx, in.MediaRef, in.LanguageCode)
		if err != nil {
			return nil, err
		}
		tr = &got
		if got.Success {
			transcript = got.Transcription
			voiceAnalyzed = true
		}
	}

	log.WithField("pitch_type", in.PitchType).Info("requesting pitch analysis")
	text, err := s.Analyzer.Analyze(ctx, prompt.AnalysisSystem(), prompt.AnalysisUser(in, transcript))
	if err != nil {
		return nil, err
	}

	raw, err := ParseRaw(text)
	if err != nil {
		return nil, err
	}
	result, err := pitch.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrAnalysisParse, err)
	}

	if voiceAnalyzed {
		result.VoiceAnalysis = pitch.VoiceFromRaw(raw.VoiceAnalysis)
	}
	if in.PitchType == pitch.TypeText {
		result.Keynotes = []string{}
	}

	threshold := s.NFTThreshold
	if threshold == 0 {
		threshold = pitch.DefaultNFTThreshold
	}
	result.NFTEligible = pitch.NFTEligible(result.OverallScore, threshold)

	result.ID = uuid.New().String()
	result.PitchID = in.ID
	result.CreatedAt = s.Clock.Now().UTC().Format(time.RFC3339)
	result.AgentsUsed = agentsUsed(in.HasMedia())

	s.persist(ctx, in, result)

	return &Result{Analysis: result, Transcription: tr}, nil
}

// TranscribeOnly serves the standalone transcription entry point.
func (s *Service) TranscribeOnly(ctx context.Context, ref, languageCode string) (pitch.TranscriptionResult, error) {
	return s.Transcriber.Transcribe(ctx, ref, languageCode)
}

// History returns a page of stored analyses.
func (s *Service) History(ctx context.Context, page, pageSize int) ([]*pitch.Record, error) {
	if s.Repo == nil {
		return []*pitch.Record{}, nil
	}
	return s.Repo.Paginate(ctx, page, pageSize)
}

// Get returns one stored analysis by id.
func (s *Service) Get(ctx context.Context, id string) (*pitch.Record, error) {
	if s.Repo == nil {
		return nil, nil
	}
	return s.Repo.Get(ctx, id)
}

// persist stores the result for history endpoints. The caller already has the
// full result; a storage failure is logged, not surfaced.
func (s *Service) persist(ctx context.Context, in pitch.PitchInput, result *pitch.AnalysisResult) {
	if s.Repo == nil {
		return
	}
	blob, err := json.Marshal(result)
	if err != nil {
		s.Log.WithModule("analysis").WithError(err).Error("marshal analysis for storage")
		return
	}
	rec := &pitch.Record{
		ID:           result.ID,
		PitchID:      in.ID,
		Title:        in.Title,
		PitchType:    string(in.PitchType),
		OverallScore: result.OverallScore,
		Result:       string(blob),
		CreatedAt:    s.Clock.Now().UTC(),
	}
	if err := s.Repo.Save(ctx, rec); err != nil {
		s.Log.WithModule("analysis").WithError(err).Error("save analysis record")
	}
}

func agentsUsed(hasMedia bool) []string {
	agents := []string{"Mistral Analysis Agent"}
	if hasMedia {
		agents = append([]string{"Pitch Analysis Agent"}, agents...)
	}
	return agents
}
