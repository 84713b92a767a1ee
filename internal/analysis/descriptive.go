package analysis

import (
	"context"

	"github.com/kiranshivaraju/sentilytics/internal/sentiment"
	"github.com/kiranshivaraju/sentilytics/internal/table"
)

// Descriptive summarizes every column and, when a text column exists, the
// share of POSITIVE and NEGATIVE labels among the first SentimentSampleSize
// texts as percentages rounded to two decimals. Other labels count toward
// the total only.
func Descriptive(ctx context.Context, t *table.Table, s sentiment.Scorer) (DescriptiveResult, error) {
	res := DescriptiveResult{SummaryStatistics: Describe(t)}

	col, ok := t.TextColumn()
	if !ok {
		return res, nil
	}

	labels, err := sentiment.Labels(ctx, s, head(t.Texts(col), SentimentSampleSize))
	if err != nil {
		return DescriptiveResult{}, err
	}
	total := len(labels)
	if total == 0 {
		total = 1
	}
	res.PositivePercentage = round(float64(countLabel(labels, sentiment.LabelPositive))/float64(total)*100, 2)
	res.NegativePercentage = round(float64(countLabel(labels, sentiment.LabelNegative))/float64(total)*100, 2)
	return res, nil
}
