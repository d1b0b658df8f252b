package transcription

import (
	"context"
	"os"

	"github.com/coralpitch/pitchdeck/internal/domain/ai"
	"github.com/coralpitch/pitchdeck/internal/domain/media"
	"github.com/coralpitch/pitchdeck/internal/domain/pitch"
	"github.com/coralpitch/pitchdeck/internal/logger"
)

// Service normalizes a media reference and runs it through the speech-to-text
// provider. Format and fetch problems are returned as errors (the request
// aborts before analysis); a speech-to-text failure is not an error here. It
// comes back as a degraded TranscriptionResult so the aggregator can continue
// with text-only analysis.
type Service struct {
	Normalizer media.Normalizer
	STT        ai.Transcriber
	Log        *logger.Logger
}

func NewService(normalizer media.Normalizer, stt ai.Transcriber, log *logger.Logger) *Service {
	return &Service{Normalizer: normalizer, STT: stt, Log: log}
}

func (s *Service) Transcribe(ctx context.Context, ref, languageCode string) (pitch.TranscriptionResult, error) {
	res, err := s.Normalizer.Normalize(ctx, ref)
	if err != nil {
		return pitch.TranscriptionResult{}, err
	}
	if res.Temp {
		defer os.Remove(res.Path)
	}

	result := pitch.TranscriptionResult{
		FilePath: res.Source,
		IsVideo:  res.Kind == media.KindVideo,
	}

	text, err := s.STT.Transcribe(ctx, res.Path, languageCode)
	if err != nil {
		s.Log.WithModule("transcription").WithError(err).
			WithField("source", res.Source).
			Warn("transcription failed, degrading to text-only analysis")
		result.Err = err
		return result, nil
	}

	result.Success = true
	result.Transcription = text
	return result, nil
}
