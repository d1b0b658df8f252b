package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/coralpitch/pitchdeck/internal/domain/ai"
	"github.com/coralpitch/pitchdeck/internal/infra/ai/prompt"
	"github.com/coralpitch/pitchdeck/internal/logger"
)

// Pitch is the generated deck content.
type Pitch struct {
	Problem       string `json:"problem"`
	Solution      string `json:"solution"`
	Market        string `json:"market"`
	BusinessModel string `json:"business_model"`
}

// ArtifactStore uploads a local file and returns its URL.
type ArtifactStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}

// Service assembles a pitch deck artifact: pitch JSON, logo image and
// narration audio. Generation failures for the logo and narration fall back
// to placeholder files so the deck stays complete; only the pitch text itself
// degrades to a canned structure when the model misbehaves (matching the
// upstream service contract of never returning nothing).
type Service struct {
	Analyzer  ai.Analyzer
	Images    ai.ImageGenerator
	Voice     ai.Synthesizer
	Artifacts ArtifactStore // nil keeps artifacts local only
	Log       *logger.Logger
}

// Result lists the produced artifacts.
type Result struct {
	ID        string   `json:"id"`
	Pitch     Pitch    `json:"pitch"`
	PitchPath string   `json:"pitch_path"`
	LogoPath  string   `json:"logo_path"`
	AudioPath string   `json:"audio_path"`
	URLs      []string `json:"urls,omitempty"`
}

// Generate produces the three deck artifacts for a topic into outDir and,
// when upload is set and a store is configured, pushes them to object storage.
func (s *Service) Generate(ctx context.Context, topic, outDir string, upload bool) (*Result, error) {
	log := s.Log.WithModule("deck").WithField("topic", topic)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	p := s.generatePitch(ctx, topic)

	res := &Result{
		ID:        uuid.New().String(),
		Pitch:     p,
		PitchPath: filepath.Join(outDir, "pitch.json"),
		LogoPath:  filepath.Join(outDir, "logo.png"),
		AudioPath: filepath.Join(outDir, "pitch.mp3"),
	}

	blob, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(res.PitchPath, blob, 0o644); err != nil {
		return nil, err
	}

	logo, err := s.Images.GenerateImage(ctx, prompt.Logo(p.Problem, p.Solution))
	if err != nil {
		log.WithError(err).Warn("logo generation failed, writing placeholder")
		logo = placeholderLogo()
	}
	if err := os.WriteFile(res.LogoPath, logo, 0o644); err != nil {
		return nil, err
	}

	narration := prompt.Narration(p.Problem, p.Solution, p.Market, p.BusinessModel)
	audio, err := s.Voice.Synthesize(ctx, narration)
	if err != nil {
		log.WithError(err).Warn("narration synthesis failed, writing placeholder")
		audio = []byte("PLACEHOLDER_AUDIO")
	}
	if err := os.WriteFile(res.AudioPath, audio, 0o644); err != nil {
		return nil, err
	}

	if upload && s.Artifacts != nil {
		for _, path := range []string{res.PitchPath, res.LogoPath, res.AudioPath} {
			key := fmt.Sprintf("decks/%s/%s", res.ID, filepath.Base(path))
			url, err := s.Artifacts.Upload(ctx, path, key)
			if err != nil {
				return res, fmt.Errorf("artifact upload: %w", err)
			}
			res.URLs = append(res.URLs, url)
		}
	}

	log.WithField("deck_id", res.ID).Info("deck generated")
	return res, nil
}

// generatePitch asks the analysis model for the structured pitch and salvages
// what it can from malformed output, falling back to a canned pitch.
func (s *Service) generatePitch(ctx context.Context, topic string) Pitch {
	fallback := Pitch{
		Problem:       fmt.Sprintf("Problem for %s", topic),
		Solution:      fmt.Sprintf("Solution for %s", topic),
		Market:        "Market size and opportunity",
		BusinessModel: "Business model details",
	}

	text, err := s.Analyzer.Analyze(ctx, prompt.PitchSystem(), prompt.PitchUser(topic))
	if err != nil {
		s.Log.WithModule("deck").WithError(err).Warn("pitch generation failed, using fallback")
		return fallback
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return fallback
	}
	var p Pitch
	if err := json.Unmarshal([]byte(text[start:end+1]), &p); err != nil {
		s.Log.WithModule("deck").WithError(err).Warn("pitch JSON malformed, using fallback")
		return fallback
	}
	return p
}

// placeholderLogo renders a flat 512x256 PNG used when image generation fails.
func placeholderLogo() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 512, 256))
	fill := color.RGBA{R: 73, G: 109, B: 137, A: 255}
	for y := 0; y < 256; y++ {
		for x := 0; x < 512; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
