// Package tika provides Apache Tika integration for text extraction.
//
// It is the alternative to the in-process PDF extractor for deployments that
// already run a Tika server.
package tika

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
	"github.com/fairyhunter13/resume-scorer/pkg/textx"
)

// Client is a minimal Apache Tika HTTP client implementing domain.TextExtractor.
// It performs PUT /tika with Accept: text/plain to retrieve extracted text.
// See: https://tika.apache.org/server/ for API details.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ domain.TextExtractor = (*Client)(nil)

// New constructs a Tika client with a default timeout.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:9998"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// pdfMIME is the only content type forwarded to Tika.
const pdfMIME = "application/pdf"

// Extract uploads a PDF to the Tika server and returns plain text with line
// breaks preserved. Non-PDF bytes and any non-2xx answer yield domain.ErrExtraction.
func (c *Client) Extract(ctx context.Context, _ string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("op=tika.Extract: %w: empty document", domain.ErrExtraction)
	}
	if mt := mimetype.Detect(data); !mt.Is(pdfMIME) {
		return "", fmt.Errorf("op=tika.Extract: %w: unsupported content type %s", domain.ErrExtraction, mt.String())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("op=tika.Extract: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("Content-Type", pdfMIME)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("op=tika.Extract: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("op=tika.Extract: %w: tika status %d", domain.ErrExtraction, resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("op=tika.Extract: %w", err)
	}
	return textx.SanitizeText(string(b)), nil
}

// Ping reports whether the server answers GET /version.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tika status %d", resp.StatusCode)
	}
	return nil
}
