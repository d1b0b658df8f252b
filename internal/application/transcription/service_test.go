package transcription

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coralpitch/pitchdeck/internal/domain/media"
	"github.com/coralpitch/pitchdeck/internal/logger"
)

type fakeNormalizer struct {
	NormalizeFunc func(ctx context.Context, ref string) (*media.Resource, error)
}

func (f *fakeNormalizer) Normalize(ctx context.Context, ref string) (*media.Resource, error) {
	return f.NormalizeFunc(ctx, ref)
}

type fakeSTT struct {
	TranscribeFunc func(ctx context.Context, audioPath, languageCode string) (string, error)
	gotPath        string
	gotLang        string
}

func (f *fakeSTT) Transcribe(ctx context.Context, audioPath, languageCode string) (string, error) {
	f.gotPath = audioPath
	f.gotLang = languageCode
	return f.TranscribeFunc(ctx, audioPath, languageCode)
}

func TestTranscribeSuccess(t *testing.T) {
	req := require.New(t)

	norm := &fakeNormalizer{NormalizeFunc: func(_ context.Context, ref string) (*media.Resource, error) {
		return &media.Resource{Path: "/tmp/pitch.mp3", Source: ref, Kind: media.KindAudio}, nil
	}}
	stt := &fakeSTT{TranscribeFunc: func(context.Context, string, string) (string, error) {
		return "we move freight faster", nil
	}}
	svc := NewService(norm, stt, logger.New())

	got, err := svc.Transcribe(context.Background(), "/uploads/pitch.mp3", "eng")
	req.NoError(err)
	req.True(got.Success)
	req.Equal("we move freight faster", got.Transcription)
	req.Equal("/uploads/pitch.mp3", got.FilePath, "file_path reports the original reference")
	req.False(got.IsVideo)
	req.Equal("/tmp/pitch.mp3", stt.gotPath)
	req.Equal("eng", stt.gotLang)
}

func TestTranscribeVideoFlag(t *testing.T) {
	req := require.New(t)

	norm := &fakeNormalizer{NormalizeFunc: func(_ context.Context, ref string) (*media.Resource, error) {
		return &media.Resource{Path: "/tmp/extracted.wav", Source: ref, Kind: media.KindVideo, Temp: false}, nil
	}}
	stt := &fakeSTT{TranscribeFunc: func(context.Context, string, string) (string, error) {
		return "hello", nil
	}}
	svc := NewService(norm, stt, logger.New())

	got, err := svc.Transcribe(context.Background(), "demo.mp4", "eng")
	req.NoError(err)
	req.True(got.IsVideo)
}

func TestTranscribeDegradesOnSTTFailure(t *testing.T) {
	req := require.New(t)

	norm := &fakeNormalizer{NormalizeFunc: func(_ context.Context, ref string) (*media.Resource, error) {
		return &media.Resource{Path: "/tmp/pitch.mp3", Source: ref, Kind: media.KindAudio}, nil
	}}
	sttErr := errors.New("speech service 500")
	stt := &fakeSTT{TranscribeFunc: func(context.Context, string, string) (string, error) {
		return "", sttErr
	}}
	svc := NewService(norm, stt, logger.New())

	got, err := svc.Transcribe(context.Background(), "pitch.mp3", "eng")
	req.NoError(err, "speech-to-text failure degrades instead of aborting")
	req.False(got.Success)
	req.Empty(got.Transcription)
	req.ErrorIs(got.Err, sttErr)
}

func TestTranscribeNormalizerErrorAborts(t *testing.T) {
	req := require.New(t)

	norm := &fakeNormalizer{NormalizeFunc: func(context.Context, string) (*media.Resource, error) {
		return nil, media.ErrUnsupportedFormat
	}}
	svc := NewService(norm, &fakeSTT{}, logger.New())

	_, err := svc.Transcribe(context.Background(), "pitch.txt", "eng")
	req.ErrorIs(err, media.ErrUnsupportedFormat)
}

func TestTranscribeRemovesTempFile(t *testing.T) {
	req := require.New(t)

	tmp := filepath.Join(t.TempDir(), "pitch-media-1.mp3")
	req.NoError(os.WriteFile(tmp, []byte("audio"), 0o600))

	norm := &fakeNormalizer{NormalizeFunc: func(_ context.Context, ref string) (*media.Resource, error) {
		return &media.Resource{Path: tmp, Source: ref, Kind: media.KindAudio, Temp: true}, nil
	}}
	stt := &fakeSTT{TranscribeFunc: func(context.Context, string, string) (string, error) {
		return "ok", nil
	}}
	svc := NewService(norm, stt, logger.New())

	_, err := svc.Transcribe(context.Background(), "https://cdn.example.com/pitch.mp3", "eng")
	req.NoError(err)
	_, statErr := os.Stat(tmp)
	req.True(os.IsNotExist(statErr), "temp files are removed after transcription")
}
