package media

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates the input extension is outside the closed
// format sets. The request aborts before any analysis call is made.
var ErrUnsupportedFormat = errors.New("unsupported media format")

// ErrFetch indicates a media URL could not be retrieved (network error or
// non-2xx status). Single attempt, no retry.
var ErrFetch = errors.New("media fetch failed")

// Kind of a media input
type Kind string

const (
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

// Closed extension sets; nothing else is accepted.
var (
	audioExts = map[string]bool{".mp3": true, ".wav": true, ".m4a": true, ".ogg": true}
	videoExts = map[string]bool{".mp4": true, ".avi": true, ".mov": true, ".mkv": true}
)

// Classify determines the media kind of a path or URL by extension.
func Classify(ref string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(strings.SplitN(ref, "?", 2)[0]))
	switch {
	case audioExts[ext]:
		return KindAudio, nil
	case videoExts[ext]:
		return KindVideo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Resource is a playable audio file ready for transcription. Source keeps the
// original reference; Kind is the kind of the original input, not of Path
// (video inputs yield an extracted audio Path with KindVideo).
type Resource struct {
	Path   string
	Source string
	Kind   Kind
	Temp   bool // Path is a temp file the consumer must remove
}

// Normalizer turns a path or URL into a single playable audio resource,
// extracting the audio track from video inputs.
type Normalizer interface {
	Normalize(ctx context.Context, ref string) (*Resource, error)
}
