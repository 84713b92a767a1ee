package analysis

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kiranshivaraju/sentilytics/internal/sentiment"
	"github.com/kiranshivaraju/sentilytics/internal/table"
)

// Diagnostic finds the most frequent tokens and the recurring complaints
// among texts labeled NEGATIVE, and ranks numeric column pairs by absolute
// Pearson correlation.
func Diagnostic(ctx context.Context, t *table.Table, s sentiment.Scorer) (DiagnosticResult, error) {
	res := DiagnosticResult{
		NegativeKeywords:    []KeywordCount{},
		NegativeClusters:    []FeedbackCluster{},
		CorrelationInsights: []CorrelationInsight{},
	}

	if col, ok := t.TextColumn(); ok {
		texts := head(t.Texts(col), SentimentSampleSize)
		labels, err := sentiment.Labels(ctx, s, texts)
		if err != nil {
			return DiagnosticResult{}, err
		}
		var negative []string
		for i, l := range labels {
			if l == sentiment.LabelNegative {
				negative = append(negative, texts[i])
			}
		}
		for _, tc := range mostCommon(tokenizeAll(negative), TopNegativeKeywords) {
			res.NegativeKeywords = append(res.NegativeKeywords, KeywordCount{Keyword: tc.term, Count: tc.count})
		}
		res.NegativeClusters = head(Cluster(negative), TopFeedbackClusters)
	}

	res.CorrelationInsights = rankCorrelations(t)
	return res, nil
}

type columnPair struct {
	a, b string
	corr float64
}

func rankCorrelations(t *table.Table) []CorrelationInsight {
	out := []CorrelationInsight{}
	cols := t.NumericColumns()
	if len(cols) < 2 {
		return out
	}

	names := t.Columns()
	var pairs []columnPair
	for i, a := range cols {
		for _, b := range cols[i+1:] {
			pairs = append(pairs, columnPair{a: names[a], b: names[b], corr: pearson(t.Column(a), t.Column(b))})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		pi, pj := pairs[i], pairs[j]
		ai, aj := math.Abs(pi.corr), math.Abs(pj.corr)
		if ai != aj {
			return ai > aj
		}
		if pi.a != pj.a {
			return pi.a > pj.a
		}
		if pi.b != pj.b {
			return pi.b > pj.b
		}
		return pi.corr > pj.corr
	})

	for _, p := range head(pairs, TopCorrelations) {
		out = append(out, CorrelationInsight{
			Pair:        fmt.Sprintf("%s vs %s", p.a, p.b),
			Correlation: round(p.corr, 3),
		})
	}
	return out
}

// pearson correlates the rows where both cells are numbers. An undefined
// correlation is 0.
func pearson(a, b []table.Cell) float64 {
	var xs, ys []float64
	for i := range a {
		if a[i].Kind == table.Number && b[i].Kind == table.Number {
			xs = append(xs, a[i].Num)
			ys = append(ys, b[i].Num)
		}
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}
