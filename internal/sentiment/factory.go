package sentiment

import (
	"context"
	"fmt"

	"github.com/kiranshivaraju/sentilytics/internal/config"
)

// NewFactory returns the Factory for the configured backend.
func NewFactory(cfg config.SentimentConfig) (Factory, error) {
	switch cfg.Backend {
	case config.BackendVADER:
		return func(_ context.Context) (Scorer, error) {
			return NewVADER(cfg.NeutralBand), nil
		}, nil
	case config.BackendTransformer:
		return func(ctx context.Context) (Scorer, error) {
			t, err := NewTransformer(ctx, TransformerConfig{Model: cfg.Model, Dir: cfg.ModelDir})
			if err != nil {
				return nil, err
			}
			return t, nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown sentiment backend %q: must be one of vader, transformer", cfg.Backend)
	}
}
