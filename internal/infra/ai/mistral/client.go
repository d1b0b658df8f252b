package mistral

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/coralpitch/pitchdeck/internal/domain/ai"
)

const (
	maxTokens      = 2048
	defaultTimeout = 45 * time.Second
)

// Client drives the Mistral chat completion API. Mistral exposes an
// OpenAI-compatible surface, so the same client the rest of the codebase uses
// for OpenAI works here with a different base URL.
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}
}

// Analyze sends one chat completion and returns the raw response content.
// Single attempt; any transport or provider failure is fatal for the request.
func (c *Client) Analyze(ctx context.Context, system, user string) (string, error) {
	model := c.model
	if model == "" {
		model = "mistral-small-latest"
	}
	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.7,
		MaxTokens:   maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ai.ErrServiceUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ai.ErrServiceUnavailable)
	}

	return resp.Choices[0].Message.Content, nil
}
