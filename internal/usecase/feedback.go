package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fairyhunter13/resume-scorer/internal/adapter/ai/tokencount"
	"github.com/fairyhunter13/resume-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

// FeedbackService redeems a token for LLM-written feedback.
type FeedbackService struct {
	Store   domain.FeedbackStore
	LLM     domain.LLMClient
	Timeout time.Duration
	Tokens  *tokencount.Counter
}

// NewFeedbackService constructs a FeedbackService. A zero timeout means the
// caller's context alone bounds the LLM call.
func NewFeedbackService(store domain.FeedbackStore, llm domain.LLMClient, timeout time.Duration) FeedbackService {
	return FeedbackService{Store: store, LLM: llm, Timeout: timeout, Tokens: tokencount.Default}
}

// Redeem consumes the entry for token and asks the LLM for feedback. The entry
// is gone once Take succeeds, whatever the LLM outcome.
func (s FeedbackService) Redeem(ctx domain.Context, token string) (string, error) {
	lg := observability.LoggerFromContext(ctx)
	entry, err := s.Store.Take(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			observability.TokenRedeemed(observability.RedeemNotFound)
		}
		return "", fmt.Errorf("op=usecase.Redeem: %w", err)
	}
	if s.LLM == nil {
		observability.TokenRedeemed(observability.RedeemFailed)
		return "", fmt.Errorf("op=usecase.Redeem: %w: no LLM provider configured", domain.ErrFeedbackGeneration)
	}

	user := BuildFeedbackPrompt(entry.Resume, entry.Job, entry.Breakdown)
	callCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.LLM.Complete(callCtx, SystemPrompt, user)
	if err == nil && strings.TrimSpace(out) == "" {
		err = errors.New("empty completion")
	}
	if err != nil {
		observability.TokenRedeemed(observability.RedeemFailed)
		lg.Error("feedback generation failed",
			slog.String("token", token),
			slog.String("model", s.LLM.Model()),
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("error", err))
		return "", fmt.Errorf("op=usecase.Redeem: %w: %w", domain.ErrFeedbackGeneration, err)
	}
	observability.TokenRedeemed(observability.RedeemOK)

	if s.Tokens != nil {
		u := s.Tokens.Measure(SystemPrompt, user, out, s.LLM.Model())
		observability.RecordAITokens(u.Model, u.PromptTokens, u.CompletionTokens)
		lg.Info("feedback generated",
			slog.String("token", token),
			slog.String("model", u.Model),
			slog.Int("prompt_tokens", u.PromptTokens),
			slog.Int("completion_tokens", u.CompletionTokens),
			slog.Bool("estimated", u.Estimated),
			slog.Duration("elapsed", time.Since(start)))
	}
	return out, nil
}
