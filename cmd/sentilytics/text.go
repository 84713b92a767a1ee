package main

import (
	"strings"

	"github.com/spf13/cobra"
)

type textResult struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

func newTextCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "text <string>...",
		Short: "Score a single text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			score, err := svc.AnalyzeText(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, textResult{Sentiment: score.Label, Confidence: score.Confidence})
		},
	}
}
