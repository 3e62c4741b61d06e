// Package ai wraps the chat-completion provider used as the pipeline's
// fallback answer source. The client speaks the OpenAI chat API and accepts
// a custom base URL, so any OpenAI-compatible backend can be swapped in via
// configuration.
package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Completer produces an assistant answer for a user prompt, given a system
// prompt that carries persona and conversation context. Implementations must
// honor ctx cancellation.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ErrEmptyCompletion is returned when the provider answers with no choices
// or blank content.
var ErrEmptyCompletion = errors.New("ai: empty completion")

// Client is the production Completer backed by go-openai.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// Options configures New. Model defaults to gpt-3.5-turbo and Timeout to
// 30s when unset. BaseURL is optional; leave empty for the public API.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// New builds a Client from Options.
func New(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	model := opts.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		api:     openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

// Complete sends a two-message chat request (system + user) and returns the
// first choice's content. The call is bounded by the configured timeout in
// addition to whatever deadline ctx carries.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
