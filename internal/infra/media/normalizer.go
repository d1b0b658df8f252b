package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/coralpitch/pitchdeck/internal/domain/media"
)

// Normalizer turns a local path or URL into a single playable audio file.
// URLs are fetched once, no retries; video inputs go through ffmpeg to pull
// the audio track.
type Normalizer struct {
	http   *http.Client
	tmpDir string
}

func NewNormalizer(tmpDir string) *Normalizer {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Normalizer{
		http:   &http.Client{Timeout: 30 * time.Second},
		tmpDir: tmpDir,
	}
}

func (n *Normalizer) Normalize(ctx context.Context, ref string) (*media.Resource, error) {
	kind, err := media.Classify(ref)
	if err != nil {
		return nil, err
	}

	path := ref
	temp := false
	if isURL(ref) {
		path, err = n.fetch(ctx, ref)
		if err != nil {
			return nil, err
		}
		temp = true
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("media file: %w", err)
	}

	if kind == media.KindAudio {
		return &media.Resource{Path: path, Source: ref, Kind: kind, Temp: temp}, nil
	}

	audioPath, err := n.extractAudio(ctx, path)
	if temp {
		os.Remove(path)
	}
	if err != nil {
		return nil, err
	}
	return &media.Resource{Path: audioPath, Source: ref, Kind: media.KindVideo, Temp: true}, nil
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// fetch downloads the media URL into a temp file, keeping the extension so
// downstream classification and ffmpeg both work.
func (n *Normalizer) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", media.ErrFetch, err)
	}
	resp, err := n.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", media.ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status=%d for %s", media.ErrFetch, resp.StatusCode, url)
	}

	ext := filepath.Ext(strings.SplitN(url, "?", 2)[0])
	f, err := os.CreateTemp(n.tmpDir, "pitch-media-*"+ext)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("%w: %v", media.ErrFetch, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// extractAudio pulls the audio track out of a video file into a 16kHz mono wav.
func (n *Normalizer) extractAudio(ctx context.Context, videoPath string) (string, error) {
	audioPath := filepath.Join(n.tmpDir, fmt.Sprintf("pitch-audio-%d.wav", time.Now().UnixNano()))

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", videoPath,
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		audioPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.Remove(audioPath)
		return "", fmt.Errorf("ffmpeg error: %v\nstderr: %s", err, stderr.String())
	}
	return audioPath, nil
}
