// Package sentiment defines the sentiment-scoring capability consumed by the
// analytics pipeline and the backends that provide it.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
	LabelNeutral  = "NEUTRAL"
)

var (
	ErrModelUnavailable = errors.New("sentiment model unavailable")
	ErrEmptyText        = errors.New("text must be a non-empty string")
)

// Score is one classification: a label and a confidence in [0, 1].
type Score struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Scorer classifies texts. Implementations return exactly one Score per
// input, in input order, and must be safe for concurrent use.
type Scorer interface {
	Score(ctx context.Context, texts []string) ([]Score, error)
	// Name identifies the backend and model, e.g. "vader".
	Name() string
}

// NormalizeLabel upper-cases a backend label; an empty label is NEUTRAL.
func NormalizeLabel(label string) string {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return LabelNeutral
	}
	return label
}

// Labels scores texts and returns their normalized labels.
// An empty input is returned as nil without calling the scorer.
func Labels(ctx context.Context, s Scorer, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	scores, err := s.Score(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("score %d texts with %s: %w", len(texts), s.Name(), err)
	}
	if len(scores) != len(texts) {
		return nil, fmt.Errorf("%s returned %d scores for %d texts", s.Name(), len(scores), len(texts))
	}
	labels := make([]string, len(scores))
	for i, sc := range scores {
		labels[i] = NormalizeLabel(sc.Label)
	}
	return labels, nil
}
