package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	sttModel       = "scribe_v1"
	ttsModel       = "eleven_multilingual_v2"

	// Rachel, a public ElevenLabs voice
	defaultVoiceID = "EXAVITQu4vr4xnSDxMaL"
)

// Client talks to the ElevenLabs speech-to-text and text-to-speech endpoints.
// There is no official Go SDK; both calls are plain HTTP, single attempt.
type Client struct {
	apiKey  string
	baseURL string
	voiceID string
	http    *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") } }
func WithVoiceID(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.voiceID = id
		}
	}
}
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.http.Timeout = d } }

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		voiceID: defaultVoiceID,
		http:    &http.Client{Timeout: 45 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// transcriptResponse is the speech-to-text response shape.
type transcriptResponse struct {
	LanguageCode string `json:"language_code"`
	Text         string `json:"text"`
}

// Transcribe sends a local audio file to the speech-to-text endpoint and
// returns the transcript text.
func (c *Client) Transcribe(ctx context.Context, audioPath, languageCode string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	w.WriteField("model_id", sttModel)
	if languageCode != "" {
		w.WriteField("language_code", languageCode)
	}
	w.WriteField("tag_audio_events", "false")
	w.WriteField("diarize", "true")
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/speech-to-text", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech-to-text request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech-to-text error: status=%d body=%s", resp.StatusCode, raw)
	}

	var tr transcriptResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		return "", fmt.Errorf("speech-to-text decode: %w", err)
	}
	return strings.TrimSpace(tr.Text), nil
}

// Synthesize renders text into MP3 narration audio.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{
		"text":          text,
		"model_id":      ttsModel,
		"output_format": "mp3_44100_128",
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("text-to-speech request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("text-to-speech error: status=%d body=%s", resp.StatusCode, raw)
	}
	return io.ReadAll(resp.Body)
}
