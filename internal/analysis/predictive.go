package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/kiranshivaraju/sentilytics/internal/sentiment"
	"github.com/kiranshivaraju/sentilytics/internal/table"
)

const (
	MinTrainingRecords = 10
	MaxFeatures        = 1000
	TestFraction       = 0.2
	SplitSeed          = 42
	MaxIterations      = 200
)

// Skip reasons reported by Predictive.
const (
	ReasonNoTextColumn  = "No text column available for model training."
	ReasonTooFewRecords = "Not enough text records for training."
	ReasonSameSentiment = "All texts have the same sentiment; model training requires mixed sentiment data."
	reasonFailedPrefix  = "Model training failed: "
)

// Predictive checks whether the scorer's labels are learnable from the text
// alone: it labels the first TrainingSampleSize texts POSITIVE=1/other=0,
// fits a tf-idf logistic regression on a stratified 80/20 split and reports
// held-out metrics. It never fails; every problem becomes a Skipped result.
func Predictive(ctx context.Context, t *table.Table, s sentiment.Scorer) (res PredictiveResult) {
	col, ok := t.TextColumn()
	if !ok {
		return Skipped(ReasonNoTextColumn)
	}
	texts := t.Texts(col)
	if len(texts) < MinTrainingRecords {
		return Skipped(ReasonTooFewRecords)
	}

	defer func() {
		if r := recover(); r != nil {
			res = Skipped(fmt.Sprintf("%s%v", reasonFailedPrefix, r))
		}
	}()

	metrics, err := train(ctx, head(texts, TrainingSampleSize), s)
	if err != nil {
		if errors.Is(err, errSingleClass) {
			return Skipped(ReasonSameSentiment)
		}
		return Skipped(reasonFailedPrefix + err.Error())
	}
	return Trained(metrics)
}

var errSingleClass = errors.New("single sentiment class")

func train(ctx context.Context, texts []string, s sentiment.Scorer) (Metrics, error) {
	labels, err := sentiment.Labels(ctx, s, texts)
	if err != nil {
		return Metrics{}, err
	}
	y := make([]int, len(labels))
	classes := make(map[int]bool)
	for i, l := range labels {
		if l == sentiment.LabelPositive {
			y[i] = 1
		}
		classes[y[i]] = true
	}
	if len(classes) < 2 {
		return Metrics{}, errSingleClass
	}

	vec := newTFIDF(MaxFeatures)
	x, err := vec.fitTransform(texts[:len(y)])
	if err != nil {
		return Metrics{}, err
	}

	trainIdx, testIdx, err := stratifiedSplit(y, TestFraction, SplitSeed)
	if err != nil {
		return Metrics{}, err
	}
	xTrain, yTrain := gather(x, y, trainIdx)
	xTest, yTest := gather(x, y, testIdx)

	if err := ctx.Err(); err != nil {
		return Metrics{}, err
	}

	model := newLogisticRegression(MaxIterations)
	if err := model.fit(xTrain, yTrain, vec.numFeatures()); err != nil {
		return Metrics{}, err
	}
	return score(yTest, model.predict(xTest)), nil
}

func gather(x []sparseRow, y []int, idx []int) ([]sparseRow, []int) {
	xs := make([]sparseRow, len(idx))
	ys := make([]int, len(idx))
	for i, k := range idx {
		xs[i] = x[k]
		ys[i] = y[k]
	}
	return xs, ys
}
