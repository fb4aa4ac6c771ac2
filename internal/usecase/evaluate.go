// Package usecase contains application business logic services.
package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fairyhunter13/resume-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-scorer/internal/domain"
	"github.com/fairyhunter13/resume-scorer/internal/scoring"
	"github.com/fairyhunter13/resume-scorer/pkg/textx"
)

// Submission is one uploaded document plus the job it is scored against.
type Submission struct {
	FileName       string
	Data           []byte
	JobDescription string
}

// Evaluation is what /upload returns: the feedback token and the scores.
type Evaluation struct {
	Token     string
	Breakdown domain.ScoreBreakdown
}

// EvaluateService extracts, scores and parks the context for later feedback.
type EvaluateService struct {
	Extractor  domain.TextExtractor
	Aggregator *scoring.Aggregator
	Store      domain.FeedbackStore
	NewToken   func() string
	Now        func() time.Time
}

// NewEvaluateService constructs an EvaluateService with its dependencies.
func NewEvaluateService(x domain.TextExtractor, agg *scoring.Aggregator, store domain.FeedbackStore) EvaluateService {
	return EvaluateService{
		Extractor:  x,
		Aggregator: agg,
		Store:      store,
		NewToken:   uuid.NewString,
		Now:        time.Now,
	}
}

// Evaluate extracts text from the submission and scores it. Only extraction
// failure or a store failure aborts; empty text is scored like any other input.
func (s EvaluateService) Evaluate(ctx domain.Context, sub Submission) (Evaluation, error) {
	if len(sub.Data) == 0 {
		return Evaluation{}, fmt.Errorf("op=usecase.Evaluate: %w: empty document", domain.ErrInvalidArgument)
	}
	resume, err := s.Extractor.Extract(ctx, sub.FileName, sub.Data)
	if err != nil {
		return Evaluation{}, fmt.Errorf("op=usecase.Evaluate: %w", err)
	}
	return s.Score(ctx, resume, sub.JobDescription)
}

// Score evaluates already-extracted resume text, stores the pending feedback
// context under a fresh token and returns both.
func (s EvaluateService) Score(ctx domain.Context, resume, job string) (Evaluation, error) {
	job = textx.NormalizeJobDescription(job)
	resume = textx.SanitizeText(resume)

	b := s.Aggregator.Evaluate(ctx, scoring.Input{Resume: resume, Job: job})
	observability.ObserveFinalScore(b.FinalScore)

	entry := domain.PendingFeedback{
		Token:     s.NewToken(),
		Resume:    resume,
		Job:       job,
		Breakdown: b,
		CreatedAt: s.Now().UTC(),
	}
	if err := s.Store.Put(ctx, entry); err != nil {
		return Evaluation{}, fmt.Errorf("op=usecase.Score: %w", err)
	}
	observability.TokenIssued()

	observability.LoggerFromContext(ctx).Info("resume scored",
		slog.String("token", entry.Token),
		slog.Float64("final_score", b.FinalScore),
		slog.Bool("education_match", b.EducationMatch),
		slog.Int("bullets", b.TotalBullets),
		slog.Int("resume_chars", len([]rune(resume))))
	return Evaluation{Token: entry.Token, Breakdown: b}, nil
}
