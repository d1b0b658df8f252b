package openai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ImageClient generates deck logos with DALL·E and downloads the result.
type ImageClient struct {
	client *openai.Client
	http   *http.Client
}

func NewImageClient(apiKey string, timeout time.Duration) *ImageClient {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &ImageClient{
		client: openai.NewClientWithConfig(cfg),
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// GenerateImage produces one 512x512 PNG for the prompt.
func (c *ImageClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt: prompt,
		N:      1,
		Size:   openai.CreateImageSize512x512,
	})
	if err != nil {
		return nil, fmt.Errorf("image generation: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, fmt.Errorf("image generation: empty response")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resp.Data[0].URL, nil)
	if err != nil {
		return nil, err
	}
	dl, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image download: %w", err)
	}
	defer dl.Body.Close()
	if dl.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download: status=%d", dl.StatusCode)
	}
	return io.ReadAll(dl.Body)
}
