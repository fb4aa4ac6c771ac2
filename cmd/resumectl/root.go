package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/resume-scorer/internal/config"
)

// configLoader is swapped in tests.
type configLoader func() (config.Config, error)

func newRootCmd(load configLoader) *cobra.Command {
	if load == nil {
		load = config.Parse
	}
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Score resumes against job descriptions",
		Long:          "resumectl runs the resume heuristics and weighted aggregator locally, and can request LLM feedback for the result.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("verbose", false, "Log at debug level to stderr")
	root.AddCommand(newScoreCmd(load), newWeightsCmd(load))
	return root
}

func cliLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
