package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/resume-scorer/internal/config"
)

func newWeightsCmd(load configLoader) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Print the active weight table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				cfg, err := load()
				if err != nil {
					return err
				}
				file = cfg.ScoringWeightsFile
			}
			ws, err := config.LoadWeights(file)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, w := range ws {
				fmt.Fprintf(tw, "%s\t%.2f\n", w.Name, w.Weight)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML weights file (defaults to SCORING_WEIGHTS_FILE)")
	return cmd
}
