// Package gemini calls Google's Gemini API as an alternative feedback provider.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/genai"

	"github.com/fairyhunter13/resume-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

const (
	provider     = "gemini"
	defaultModel = "gemini-2.0-flash"
)

// contentGenerator is the slice of *genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements domain.LLMClient on the Gemini API backend.
type Client struct {
	models    contentGenerator
	model     string
	maxTokens int32
}

var _ domain.LLMClient = (*Client)(nil)

// Config carries the connection settings. BaseURL is only set in tests.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int
	BaseURL   string
}

// New creates a client configured for the Gemini API backend.
func New(ctx context.Context, cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("op=gemini.New: %w: api key is required", domain.ErrInvalidArgument)
	}
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("op=gemini.New: %w", err)
	}
	return newWithGenerator(client.Models, cfg.Model, cfg.MaxTokens), nil
}

func newWithGenerator(g contentGenerator, model string, maxTokens int) *Client {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Client{models: g, model: model, maxTokens: int32(maxTokens)}
}

// Model returns the configured model id.
func (c *Client) Model() string { return c.model }

// Complete sends userPrompt with systemPrompt as the system instruction and
// joins every text part of the response.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}
	if c.maxTokens > 0 {
		cfg.MaxOutputTokens = c.maxTokens
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(userPrompt), cfg)
	observability.ObserveAIRequest(provider, time.Since(start), err)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			observability.LoggerFromContext(ctx).Warn("ai provider error",
				"provider", provider, "model", c.model, "status", apiErr.Code, "message", apiErr.Message)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("op=gemini.Complete: %w: %v", domain.ErrUpstreamTimeout, err)
		}
		return "", fmt.Errorf("op=gemini.Complete: %w", err)
	}
	return joinText(resp), nil
}

func joinText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text)
		}
	}
	return b.String()
}
