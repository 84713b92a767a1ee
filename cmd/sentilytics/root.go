package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kiranshivaraju/sentilytics/internal/config"
	"github.com/kiranshivaraju/sentilytics/internal/logging"
	"github.com/kiranshivaraju/sentilytics/internal/sentiment"
	"github.com/kiranshivaraju/sentilytics/internal/service"
)

type options struct {
	backend     string
	model       string
	modelDir    string
	neutralBand float64
	format      string
	debug       bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "sentilytics",
		Short:         "Sentiment analytics for tabular feedback",
		Long:          `Sentilytics scores the text column of a dataset and produces the same dashboard report the HTTP API serves.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "warn"
			if opts.debug {
				level = "debug"
			}
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), "development", level))
			if opts.format != formatJSON && opts.format != formatYAML {
				return fmt.Errorf("unsupported --format: %s (use json|yaml)", opts.format)
			}
			return nil
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.backend, "backend", config.BackendVADER, "sentiment backend: vader|transformer")
	f.StringVar(&opts.model, "model", config.DefaultTransformerModel, "transformer model repository")
	f.StringVar(&opts.modelDir, "model-dir", "./models", "directory for downloaded transformer models")
	f.Float64Var(&opts.neutralBand, "neutral-band", 0.20, "VADER compound scores inside (-band, band) are NEUTRAL")
	f.StringVarP(&opts.format, "format", "f", formatJSON, "output format: json|yaml")
	f.BoolVar(&opts.debug, "debug", false, "enable debug logging on stderr")

	root.AddCommand(newDatasetCmd(opts), newTextCmd(opts))
	return root
}

// service builds an analysis service without run log or cache.
func (o *options) service() (*service.AnalysisService, error) {
	factory, err := sentiment.NewFactory(config.SentimentConfig{
		Backend:     o.backend,
		Model:       o.model,
		ModelDir:    o.modelDir,
		NeutralBand: o.neutralBand,
	})
	if err != nil {
		return nil, err
	}
	return service.NewAnalysisService(sentiment.NewLoader(factory), nil, nil, 0), nil
}
