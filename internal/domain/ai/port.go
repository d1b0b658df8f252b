package ai

import "context"

// Analyzer runs a chat completion against the analysis service and returns
// the raw response text, expected to be a single JSON object.
type Analyzer interface {
	Analyze(ctx context.Context, system, user string) (string, error)
}

// Transcriber sends an audio file to the speech-to-text service.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, languageCode string) (string, error)
}

// Synthesizer renders text into narration audio (MP3 bytes).
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// ImageGenerator produces an image (PNG bytes) from a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}
