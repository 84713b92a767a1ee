// Package mock provides deterministic sentiment scorers for tests.
package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/kiranshivaraju/sentilytics/internal/sentiment"
)

// Scorer satisfies sentiment.Scorer for testing.
type Scorer struct {
	Name_     string
	ScoreFunc func(ctx context.Context, texts []string) ([]sentiment.Score, error)

	calls atomic.Int64
}

func (m *Scorer) Name() string { return m.Name_ }

func (m *Scorer) Score(ctx context.Context, texts []string) ([]sentiment.Score, error) {
	m.calls.Add(1)
	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, texts)
	}
	out := make([]sentiment.Score, len(texts))
	for i := range out {
		out[i] = sentiment.Score{Label: sentiment.LabelNeutral, Confidence: 0.5}
	}
	return out, nil
}

// Calls returns how many times Score was invoked.
func (m *Scorer) Calls() int64 { return m.calls.Load() }

var (
	positiveWords = []string{"good", "great", "excellent", "amazing", "love", "happy", "fantastic"}
	negativeWords = []string{"bad", "poor", "terrible", "awful", "hate", "broken", "worst"}
)

// NewKeywordScorer labels a text POSITIVE or NEGATIVE when it contains one
// of a handful of keywords (negative wins), NEUTRAL otherwise.
func NewKeywordScorer() *Scorer {
	return &Scorer{
		Name_: "mock-keyword",
		ScoreFunc: func(_ context.Context, texts []string) ([]sentiment.Score, error) {
			out := make([]sentiment.Score, len(texts))
			for i, text := range texts {
				lower := strings.ToLower(text)
				switch {
				case containsAny(lower, negativeWords):
					out[i] = sentiment.Score{Label: sentiment.LabelNegative, Confidence: 0.9}
				case containsAny(lower, positiveWords):
					out[i] = sentiment.Score{Label: sentiment.LabelPositive, Confidence: 0.9}
				default:
					out[i] = sentiment.Score{Label: sentiment.LabelNeutral, Confidence: 0.6}
				}
			}
			return out, nil
		},
	}
}

// NewConstantScorer labels every text with label.
func NewConstantScorer(label string) *Scorer {
	return &Scorer{
		Name_: "mock-constant",
		ScoreFunc: func(_ context.Context, texts []string) ([]sentiment.Score, error) {
			out := make([]sentiment.Score, len(texts))
			for i := range out {
				out[i] = sentiment.Score{Label: label, Confidence: 1}
			}
			return out, nil
		},
	}
}

// NewFailingScorer returns a Scorer that always returns err.
func NewFailingScorer(err error) *Scorer {
	return &Scorer{
		Name_: "mock-failing",
		ScoreFunc: func(_ context.Context, _ []string) ([]sentiment.Score, error) {
			return nil, err
		},
	}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// Compile-time check that Scorer implements sentiment.Scorer.
var _ sentiment.Scorer = (*Scorer)(nil)
