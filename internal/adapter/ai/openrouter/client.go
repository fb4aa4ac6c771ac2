// Package openrouter calls OpenAI-compatible chat completion endpoints,
// OpenRouter by default.
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/resume-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

const provider = "openrouter"

// Config carries the connection settings.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	Referer   string
	Title     string
	MaxTokens int
	// Timeout bounds the HTTP round trip; zero leaves it to the caller's context.
	Timeout time.Duration
}

// Client implements domain.LLMClient.
type Client struct {
	api       *openai.Client
	model     string
	maxTokens int
}

var _ domain.LLMClient = (*Client)(nil)

// New builds a client. The API key is required.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("op=openrouter.New: %w: api key is required", domain.ErrInvalidArgument)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("op=openrouter.New: %w: model is required", domain.ErrInvalidArgument)
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	oc.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &headerTransport{
			base:    otelhttp.NewTransport(http.DefaultTransport),
			referer: cfg.Referer,
			title:   cfg.Title,
		},
	}
	return &Client{api: openai.NewClientWithConfig(oc), model: cfg.Model, maxTokens: cfg.MaxTokens}, nil
}

// Model returns the fixed model id every call uses.
func (c *Client) Model() string { return c.model }

// Complete sends one system and one user message and returns the first choice.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	lg := observability.LoggerFromContext(ctx)
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}
	if c.maxTokens > 0 {
		req.MaxTokens = c.maxTokens
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	observability.ObserveAIRequest(provider, time.Since(start), err)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			lg.Warn("ai provider error",
				"provider", provider,
				"model", c.model,
				"status", apiErr.HTTPStatusCode,
				"message", apiErr.Message)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("op=openrouter.Complete: %w: %v", domain.ErrUpstreamTimeout, err)
		}
		return "", fmt.Errorf("op=openrouter.Complete: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("op=openrouter.Complete: empty choices")
	}
	if resp.Model != "" && resp.Model != c.model {
		lg.Info("model substitution detected", "provider", provider, "requested", c.model, "served", resp.Model)
	}
	return resp.Choices[0].Message.Content, nil
}

// headerTransport adds the attribution headers OpenRouter reads.
type headerTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if t.referer == "" && t.title == "" {
		return t.base.RoundTrip(r)
	}
	r = r.Clone(r.Context())
	if t.referer != "" {
		r.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		r.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(r)
}
