// Package domain holds the core types and ports of the resume scorer.
package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrExtraction         = errors.New("extraction failed")
	ErrFeedbackGeneration = errors.New("feedback generation failed")
	ErrUpstreamTimeout    = errors.New("upstream timeout")
	ErrInternal           = errors.New("internal error")
)

// ScoreBreakdown is the result of running every heuristic over one resume/job pair.
// Numeric fields are normalized to [0,1]. EducationMatch is reported but never weighted.
type ScoreBreakdown struct {
	KeywordMatch         float64
	ActionVerb           float64
	QuantifiedExperience float64
	SectionCoverage      float64
	Formatting           float64
	EducationMatch       bool
	FinalScore           float64

	ActionVerbBullets int
	QuantifiedBullets int
	TotalBullets      int
}

// PendingFeedback is the context cached between /upload and /feedback.
type PendingFeedback struct {
	Token     string         `json:"token"`
	Resume    string         `json:"resume"`
	Job       string         `json:"job"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	CreatedAt time.Time      `json:"created_at"`
}

// FeedbackStore (port)
// Put fails with ErrConflict when the token is already present.
// Take returns and removes the entry in one step; absent or already taken tokens yield ErrNotFound.
type FeedbackStore interface {
	Put(ctx Context, entry PendingFeedback) error
	Take(ctx Context, token string) (PendingFeedback, error)
	Len(ctx Context) (int, error)
	Clear(ctx Context) error
}

// TextExtractor (port)
// Extract converts uploaded document bytes into plain text, pages in order.
// Unparseable documents yield ErrExtraction.
type TextExtractor interface {
	Extract(ctx Context, fileName string, data []byte) (string, error)
}

// LLMClient (port)
// Complete sends a single-turn chat and returns the generated text.
type LLMClient interface {
	Complete(ctx Context, systemPrompt, userPrompt string) (string, error)
	Model() string
}

// Context is an alias so ports read uniformly across adapters.
type Context = context.Context
