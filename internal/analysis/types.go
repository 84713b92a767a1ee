package analysis

import (
	"bytes"
	"encoding/json"
	"math"
)

// Sampling caps keep scorer latency bounded.
const (
	SentimentSampleSize = 200
	TokenSampleSize     = 500
	TrainingSampleSize  = 500

	TopWords            = 15
	TopNegativeKeywords = 10
	TopCorrelations     = 5
)

// WordCount is one entry of a word-frequency list.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// KeywordCount is one entry of a negative-keyword list.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

type LabelCount struct {
	Label string
	Count int
}

// LabelCounts is a label tally in first-seen order. It marshals as a JSON object.
type LabelCounts []LabelCount

func (lc LabelCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range lc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(itoa(c.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the count for label, or 0.
func (lc LabelCounts) Get(label string) int {
	for _, c := range lc {
		if c.Label == label {
			return c.Count
		}
	}
	return 0
}

// EDAResult is the exploratory stage output.
type EDAResult struct {
	TotalRecords          int         `json:"total_records"`
	AverageTextLength     int         `json:"average_text_length"`
	SentimentDistribution LabelCounts `json:"sentiment_distribution"`
	WordFrequency         []WordCount `json:"word_frequency"`
}

// DescriptiveResult is the descriptive stage output.
type DescriptiveResult struct {
	SummaryStatistics  Summary `json:"summary_statistics"`
	PositivePercentage float64 `json:"positive_percentage"`
	NegativePercentage float64 `json:"negative_percentage"`
}

// CorrelationInsight is a ranked numeric column pair.
type CorrelationInsight struct {
	Pair        string  `json:"pair"`
	Correlation float64 `json:"correlation"`
}

// DiagnosticResult is the diagnostic stage output.
type DiagnosticResult struct {
	NegativeKeywords    []KeywordCount       `json:"negative_keywords"`
	NegativeClusters    []FeedbackCluster    `json:"negative_clusters"`
	CorrelationInsights []CorrelationInsight `json:"correlation_insights"`
}

type PredictiveStatus string

const (
	StatusTrained PredictiveStatus = "trained"
	StatusSkipped PredictiveStatus = "skipped"
)

// Metrics are held-out classification scores, each in [0, 1].
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
}

// PredictiveResult is either Trained (Metrics set) or Skipped (Reason set).
type PredictiveResult struct {
	Status PredictiveStatus `json:"status"`
	Reason string           `json:"reason,omitempty"`
	*Metrics
}

func Trained(m Metrics) PredictiveResult {
	return PredictiveResult{Status: StatusTrained, Metrics: &m}
}

func Skipped(reason string) PredictiveResult {
	return PredictiveResult{Status: StatusSkipped, Reason: reason}
}

func (p PredictiveResult) IsTrained() bool {
	return p.Status == StatusTrained && p.Metrics != nil
}

// round rounds half away from zero to the given number of decimals.
func round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
