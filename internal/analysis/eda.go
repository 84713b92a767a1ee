package analysis

import (
	"context"
	"unicode/utf8"

	"github.com/kiranshivaraju/sentilytics/internal/sentiment"
	"github.com/kiranshivaraju/sentilytics/internal/table"
	"github.com/kiranshivaraju/sentilytics/internal/textclean"
)

// EDA computes record count, average text length, the sentiment label
// distribution of the first SentimentSampleSize texts and the TopWords most
// frequent tokens of the first TokenSampleSize texts. Tables without a text
// column yield zeroed text results.
func EDA(ctx context.Context, t *table.Table, s sentiment.Scorer) (EDAResult, error) {
	res := EDAResult{
		TotalRecords:          t.NumRows(),
		SentimentDistribution: LabelCounts{},
		WordFrequency:         []WordCount{},
	}

	col, ok := t.TextColumn()
	if !ok {
		return res, nil
	}
	texts := t.Texts(col)

	var total, n int
	for _, text := range texts {
		if text == "" {
			continue
		}
		total += utf8.RuneCountInString(textclean.Clean(text))
		n++
	}
	if n > 0 {
		res.AverageTextLength = total / n
	}

	labels, err := sentiment.Labels(ctx, s, head(texts, SentimentSampleSize))
	if err != nil {
		return EDAResult{}, err
	}
	res.SentimentDistribution = tallyLabels(labels)

	for _, tc := range mostCommon(tokenizeAll(head(texts, TokenSampleSize)), TopWords) {
		res.WordFrequency = append(res.WordFrequency, WordCount{Word: tc.term, Count: tc.count})
	}
	return res, nil
}
