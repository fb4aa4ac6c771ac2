package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/resume-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-scorer/internal/app"
	"github.com/fairyhunter13/resume-scorer/internal/domain"
	"github.com/fairyhunter13/resume-scorer/internal/scoring"
	"github.com/fairyhunter13/resume-scorer/internal/usecase"
)

type scoreOptions struct {
	resume   string
	job      string
	feedback bool
	asJSON   bool
}

type scoreResult struct {
	Score            float64 `json:"score"`
	EducationWarning bool    `json:"education_warning"`
	KeywordMatch     float64 `json:"keyword_match_score"`
	ActionVerb       float64 `json:"action_verb_score"`
	Quantified       float64 `json:"quantified_score"`
	Formatting       float64 `json:"formatting_score"`
	SectionCoverage  float64 `json:"section_coverage"`
	Bullets          int     `json:"bullets"`
	ActionBullets    int     `json:"action_verb_bullets"`
	QuantBullets     int     `json:"quantified_bullets"`
	Feedback         string  `json:"llm_feedback,omitempty"`
}

func newScoreResult(b domain.ScoreBreakdown) scoreResult {
	return scoreResult{
		Score:            scoring.Percent(b.FinalScore),
		EducationWarning: !b.EducationMatch,
		KeywordMatch:     scoring.Percent(b.KeywordMatch),
		ActionVerb:       scoring.Percent(b.ActionVerb),
		Quantified:       scoring.Percent(b.QuantifiedExperience),
		Formatting:       scoring.Percent(b.Formatting),
		SectionCoverage:  scoring.Percent(b.SectionCoverage),
		Bullets:          b.TotalBullets,
		ActionBullets:    b.ActionVerbBullets,
		QuantBullets:     b.QuantifiedBullets,
	}
}

func newScoreCmd(load configLoader) *cobra.Command {
	var opts scoreOptions
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a resume (PDF or text) against a job description file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, load, opts)
		},
	}
	cmd.Flags().StringVar(&opts.resume, "resume", "", "Path to the resume (.pdf, or plain text)")
	cmd.Flags().StringVar(&opts.job, "job", "", "Path to the job description (plain text or HTML)")
	cmd.Flags().BoolVar(&opts.feedback, "feedback", false, "Also request LLM feedback")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print JSON instead of a table")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func runScore(cmd *cobra.Command, load configLoader, opts scoreOptions) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	// Tokens never leave the process.
	cfg.FeedbackStore = "memory"
	cfg.FeedbackTTL = 0

	logger := cliLogger(cmd)
	ctx := observability.ContextWithLogger(cmd.Context(), logger)

	jobRaw, err := os.ReadFile(opts.job)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}
	resumeRaw, err := os.ReadFile(opts.resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	comps, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = comps.Close() }()

	eval := comps.EvaluateService()
	var ev usecase.Evaluation
	if strings.EqualFold(filepath.Ext(opts.resume), ".pdf") {
		ev, err = eval.Evaluate(ctx, usecase.Submission{
			FileName:       filepath.Base(opts.resume),
			Data:           resumeRaw,
			JobDescription: string(jobRaw),
		})
	} else {
		ev, err = eval.Score(ctx, string(resumeRaw), string(jobRaw))
	}
	if err != nil {
		return err
	}

	res := newScoreResult(ev.Breakdown)
	if opts.feedback {
		if comps.LLM == nil {
			return errors.New("feedback requires OPENROUTER_API_KEY or GEMINI_API_KEY")
		}
		text, err := comps.FeedbackService(cfg).Redeem(ctx, ev.Token)
		if err != nil {
			return err
		}
		res.Feedback = text
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Final score\t%.2f%%\n", res.Score)
	fmt.Fprintf(tw, "Keyword match\t%.2f%%\n", res.KeywordMatch)
	fmt.Fprintf(tw, "Action verbs\t%.2f%%\t(%d/%d bullets)\n", res.ActionVerb, res.ActionBullets, res.Bullets)
	fmt.Fprintf(tw, "Quantified\t%.2f%%\t(%d/%d bullets)\n", res.Quantified, res.QuantBullets, res.Bullets)
	fmt.Fprintf(tw, "Formatting\t%.2f%%\n", res.Formatting)
	fmt.Fprintf(tw, "Section coverage\t%.2f%%\n", res.SectionCoverage)
	if res.EducationWarning {
		fmt.Fprintf(tw, "Education\tdoes not meet the stated requirement\n")
	} else {
		fmt.Fprintf(tw, "Education\tok\n")
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if res.Feedback != "" {
		fmt.Fprintf(out, "\n%s\n", res.Feedback)
	}
	return nil
}
