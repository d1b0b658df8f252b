package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coralpitch/pitchdeck/internal/logger"
)

type fakeAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, system, user string) (string, error)
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, system, user string) (string, error) {
	return f.AnalyzeFunc(ctx, system, user)
}

type fakeImages struct {
	GenerateImageFunc func(ctx context.Context, prompt string) ([]byte, error)
}

func (f *fakeImages) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	return f.GenerateImageFunc(ctx, prompt)
}

type fakeVoice struct {
	SynthesizeFunc func(ctx context.Context, text string) ([]byte, error)
}

func (f *fakeVoice) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return f.SynthesizeFunc(ctx, text)
}

type fakeStore struct {
	UploadFunc func(ctx context.Context, localPath, key string) (string, error)
	keys       []string
}

func (f *fakeStore) Upload(ctx context.Context, localPath, key string) (string, error) {
	f.keys = append(f.keys, key)
	if f.UploadFunc != nil {
		return f.UploadFunc(ctx, localPath, key)
	}
	return "http://storage.local/" + key, nil
}

const pitchJSON = `{
	"problem": "Carriers waste hours on paperwork",
	"solution": "Automated freight documentation",
	"market": "$700B US trucking market",
	"business_model": "Per-load SaaS fee"
}`

func happyService() *Service {
	return &Service{
		Analyzer: &fakeAnalyzer{AnalyzeFunc: func(context.Context, string, string) (string, error) {
			return pitchJSON, nil
		}},
		Images: &fakeImages{GenerateImageFunc: func(context.Context, string) ([]byte, error) {
			return []byte("png-bytes"), nil
		}},
		Voice: &fakeVoice{SynthesizeFunc: func(context.Context, string) ([]byte, error) {
			return []byte("mp3-bytes"), nil
		}},
		Log: logger.New(),
	}
}

func TestGenerateWritesArtifacts(t *testing.T) {
	req := require.New(t)

	outDir := t.TempDir()
	res, err := happyService().Generate(context.Background(), "freight automation", outDir, false)
	req.NoError(err)
	req.NotEmpty(res.ID)
	req.Empty(res.URLs)

	blob, err := os.ReadFile(filepath.Join(outDir, "pitch.json"))
	req.NoError(err)
	var p Pitch
	req.NoError(json.Unmarshal(blob, &p))
	req.Equal("Automated freight documentation", p.Solution)

	logo, err := os.ReadFile(filepath.Join(outDir, "logo.png"))
	req.NoError(err)
	req.Equal("png-bytes", string(logo))

	audio, err := os.ReadFile(filepath.Join(outDir, "pitch.mp3"))
	req.NoError(err)
	req.Equal("mp3-bytes", string(audio))
}

func TestGenerateFallbackPitchOnAnalyzerFailure(t *testing.T) {
	req := require.New(t)

	svc := happyService()
	svc.Analyzer = &fakeAnalyzer{AnalyzeFunc: func(context.Context, string, string) (string, error) {
		return "", errors.New("model down")
	}}

	res, err := svc.Generate(context.Background(), "freight automation", t.TempDir(), false)
	req.NoError(err, "a dead model still yields a complete deck")
	req.Equal("Problem for freight automation", res.Pitch.Problem)
	req.Equal("Solution for freight automation", res.Pitch.Solution)
}

func TestGenerateFallbackPitchOnMalformedJSON(t *testing.T) {
	req := require.New(t)

	svc := happyService()
	svc.Analyzer = &fakeAnalyzer{AnalyzeFunc: func(context.Context, string, string) (string, error) {
		return "I would rather write prose about freight.", nil
	}}

	res, err := svc.Generate(context.Background(), "freight automation", t.TempDir(), false)
	req.NoError(err)
	req.Equal("Problem for freight automation", res.Pitch.Problem)
}

func TestGeneratePlaceholderLogoAndAudio(t *testing.T) {
	req := require.New(t)

	outDir := t.TempDir()
	svc := happyService()
	svc.Images = &fakeImages{GenerateImageFunc: func(context.Context, string) ([]byte, error) {
		return nil, errors.New("image service down")
	}}
	svc.Voice = &fakeVoice{SynthesizeFunc: func(context.Context, string) ([]byte, error) {
		return nil, errors.New("voice service down")
	}}

	_, err := svc.Generate(context.Background(), "freight", outDir, false)
	req.NoError(err)

	// The placeholder must be a decodable PNG.
	logo, err := os.ReadFile(filepath.Join(outDir, "logo.png"))
	req.NoError(err)
	img, err := png.Decode(bytes.NewReader(logo))
	req.NoError(err)
	req.Equal(512, img.Bounds().Dx())
	req.Equal(256, img.Bounds().Dy())

	audio, err := os.ReadFile(filepath.Join(outDir, "pitch.mp3"))
	req.NoError(err)
	req.Equal("PLACEHOLDER_AUDIO", string(audio))
}

func TestGenerateUploads(t *testing.T) {
	req := require.New(t)

	store := &fakeStore{}
	svc := happyService()
	svc.Artifacts = store

	res, err := svc.Generate(context.Background(), "freight", t.TempDir(), true)
	req.NoError(err)
	req.Len(res.URLs, 3)
	req.Equal([]string{
		"decks/" + res.ID + "/pitch.json",
		"decks/" + res.ID + "/logo.png",
		"decks/" + res.ID + "/pitch.mp3",
	}, store.keys)
}

func TestGenerateUploadSkippedWithoutFlag(t *testing.T) {
	req := require.New(t)

	store := &fakeStore{}
	svc := happyService()
	svc.Artifacts = store

	res, err := svc.Generate(context.Background(), "freight", t.TempDir(), false)
	req.NoError(err)
	req.Empty(res.URLs)
	req.Empty(store.keys)
}

func TestGenerateUploadFailure(t *testing.T) {
	req := require.New(t)

	store := &fakeStore{UploadFunc: func(context.Context, string, string) (string, error) {
		return "", errors.New("bucket unreachable")
	}}
	svc := happyService()
	svc.Artifacts = store

	res, err := svc.Generate(context.Background(), "freight", t.TempDir(), true)
	req.Error(err)
	req.NotNil(res, "local artifacts survive an upload failure")
}
