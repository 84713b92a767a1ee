package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranshivaraju/sentilytics/internal/analysis"
	"github.com/kiranshivaraju/sentilytics/internal/sentiment"
	"github.com/kiranshivaraju/sentilytics/internal/sentiment/mock"
	"github.com/kiranshivaraju/sentilytics/internal/table"
)

func buildTable(t *testing.T, texts []string, values []float64) *table.Table {
	t.Helper()
	require.Len(t, values, len(texts))
	rows := make([][]table.Cell, len(texts))
	for i := range texts {
		rows[i] = []table.Cell{table.StringCell(texts[i]), table.NumberCell(values[i])}
	}
	tbl, err := table.New([]string{"text", "value"}, rows)
	require.NoError(t, err)
	return tbl
}

func assertShape(t *testing.T, rep Report) {
	t.Helper()
	body, err := json.Marshal(rep)
	require.NoError(t, err)

	var doc map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &doc))

	expected := map[string][]string{
		"biOverview":   {"composition", "trend", "distribution"},
		"descriptive":  {"kpis", "narrative", "chartData"},
		"diagnostic":   {"narrative", "correlations"},
		"predictive":   {"narrative", "forecast", "confidence", "modelExplanation"},
		"prescriptive": {"narrative", "recommendations", "disclaimer"},
	}
	require.Len(t, doc, len(expected))
	for section, keys := range expected {
		require.Contains(t, doc, section)
		assert.Len(t, doc[section], len(keys), section)
		for _, k := range keys {
			v, ok := doc[section][k]
			require.True(t, ok, "%s.%s missing", section, k)
			assert.NotEqual(t, "null", string(v), "%s.%s is null", section, k)
		}
	}
	assert.GreaterOrEqual(t, len(rep.Diagnostic.Correlations), 3)
	assert.Len(t, rep.Descriptive.KPIs, 4)
	assert.Len(t, rep.Prescriptive.Recommendations, 3)
}

func TestRun_SmallTable(t *testing.T) {
	tbl := buildTable(t, []string{"Excellent!", "Poor", "Good!"}, []float64{100, 10, 80})

	st, err := RunStages(context.Background(), tbl, mock.NewKeywordScorer())
	require.NoError(t, err)

	assert.Equal(t, 3, st.EDA.TotalRecords)
	for _, c := range st.EDA.SentimentDistribution {
		assert.Contains(t, []string{sentiment.LabelPositive, sentiment.LabelNegative, sentiment.LabelNeutral}, c.Label)
	}
	assert.Equal(t, analysis.StatusSkipped, st.Predictive.Status)
	assert.Equal(t, "Sentiment is mixed. Focus on improving consistency and monitoring key drivers weekly.", st.Prescriptive)

	rep := Assemble(st)
	assertShape(t, rep)
	assert.Equal(t, 0.65, rep.Predictive.Confidence)
	assert.Equal(t, "Predictive model requires minimum dataset size for training reliability.", rep.Predictive.ModelExplanation)
	assert.Equal(t, []LabelValue{{"POSITIVE", 2}, {"NEGATIVE", 1}}, rep.BIOverview.Composition)
	assert.Equal(t,
		"Analysis of 3 records reveals a sentiment distribution with 66.7% positive and 33.3% negative responses. "+
			"The dataset demonstrates favorable patterns that warrant monitoring.",
		rep.Descriptive.Narrative)
	assert.Equal(t,
		"Root cause analysis identifies key negative indicators: poor. Limited correlation patterns detected between features, suggesting independent data dynamics.",
		rep.Diagnostic.Narrative)
}

func TestRun_HomogeneousSentiment(t *testing.T) {
	texts := make([]string, 15)
	values := make([]float64, 15)
	for i := range texts {
		texts[i] = fmt.Sprintf("Good #%d!", i)
		values[i] = float64(100 - i)
	}

	rep, err := Run(context.Background(), buildTable(t, texts, values), mock.NewKeywordScorer())
	require.NoError(t, err)

	assertShape(t, rep)
	assert.Equal(t, "Predictive modeling skipped due to insufficient training data. Minimum 10 text records required.", rep.Predictive.Narrative)
	assert.Equal(t, []ForecastPoint{
		{"Current", 15}, {"Month +1", 15}, {"Month +2", 16}, {"Month +3", 17},
	}, rep.Predictive.Forecast)
	assert.Equal(t, "Momentum preservation strategy advised. Strong positive indicators suggest current "+
		"approach is effective. Scale successful initiatives while maintaining vigilance on "+
		"quality metrics. Consider expanding reach to capture broader market segments.", rep.Prescriptive.Narrative)
	assert.Equal(t, "Low", rep.Prescriptive.Recommendations[2].Priority)
}

func TestRun_TrainedModel(t *testing.T) {
	var texts []string
	var values []float64
	for i := 0; i < 10; i++ {
		texts = append(texts, "great product love it", "terrible broken item")
		values = append(values, float64(i), float64(-i))
	}

	rep, err := Run(context.Background(), buildTable(t, texts, values), mock.NewKeywordScorer())
	require.NoError(t, err)

	assertShape(t, rep)
	assert.Equal(t, 1.0, rep.Predictive.Confidence)
	assert.Len(t, rep.Predictive.Forecast, 5)
	assert.Equal(t, "Logistic Regression classifier trained on 20 records using TF-IDF vectorization. "+
		"Model metrics: Accuracy=1.000, F1-Score=1.000", rep.Predictive.ModelExplanation)
	assert.Contains(t, rep.Predictive.Narrative, "100.0% accuracy and 1.000 F1-score")
	assert.Contains(t, rep.Predictive.Narrative, "strong reliability")
	assert.Contains(t, rep.Predictive.Narrative, "exceeds industry benchmarks")
}

func TestRun_NoTextColumn(t *testing.T) {
	tbl, err := table.New([]string{"a", "b"}, [][]table.Cell{
		{table.NumberCell(1), table.NumberCell(2)},
		{table.NumberCell(2), table.NumberCell(4)},
	})
	require.NoError(t, err)

	rep, err := Run(context.Background(), tbl, mock.NewKeywordScorer())
	require.NoError(t, err)
	assertShape(t, rep)
	assert.Equal(t, []LabelValue{{"Unknown", 100}}, rep.BIOverview.Composition)
	assert.Equal(t, []CategoryValue{{"No data", 0}}, rep.BIOverview.Distribution)
	assert.Equal(t, Correlation{Factor: "a vs b", Relationship: "positive", Strength: 1}, rep.Diagnostic.Correlations[0])
	assert.Equal(t, "Diagnostic analysis completed with limited negative indicators detected.", rep.Diagnostic.Narrative)
}

func TestRun_ScorerFailureAborts(t *testing.T) {
	boom := errors.New("model gone")
	_, err := Run(context.Background(), buildTable(t, []string{"x"}, []float64{1}), mock.NewFailingScorer(boom))
	assert.ErrorIs(t, err, boom)
}

func TestStagesJSON(t *testing.T) {
	st, err := RunStages(context.Background(), buildTable(t, []string{"Excellent!", "Poor"}, []float64{1, 2}), mock.NewKeywordScorer())
	require.NoError(t, err)

	body, err := json.Marshal(st)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Len(t, doc, 5)
	for _, k := range []string{"eda", "descriptive_analytics", "diagnostic_analytics", "predictive_analytics", "prescriptive_analytics"} {
		assert.Contains(t, doc, k)
	}
	assert.JSONEq(t, `{"status":"skipped","reason":"Not enough text records for training."}`, string(doc["predictive_analytics"]))
}

func TestAdvisory(t *testing.T) {
	tests := []struct {
		pos, neg float64
		prefix   string
	}{
		{pos: 10, neg: 60, prefix: "High negative sentiment detected."},
		{pos: 80, neg: 10, prefix: "Strong positive sentiment."},
		{pos: 71, neg: 51, prefix: "High negative sentiment detected."},
		{pos: 70, neg: 50, prefix: "Sentiment is mixed."},
	}
	for _, tt := range tests {
		got := advisory(analysis.DescriptiveResult{PositivePercentage: tt.pos, NegativePercentage: tt.neg})
		assert.Contains(t, got, tt.prefix)
	}
}

func TestDescriptiveNarrative_Outlook(t *testing.T) {
	eda := analysis.EDAResult{TotalRecords: 1234567}
	tests := []struct {
		pos, neg float64
		expected string
	}{
		{pos: 75, neg: 10, expected: "favorable patterns that warrant celebration."},
		{pos: 20, neg: 45, expected: "concerning patterns that warrant attention."},
		{pos: 30, neg: 30, expected: "concerning patterns that warrant monitoring."},
	}
	for _, tt := range tests {
		got := descriptiveNarrative(eda, analysis.DescriptiveResult{PositivePercentage: tt.pos, NegativePercentage: tt.neg})
		assert.Contains(t, got, "Analysis of 1,234,567 records")
		assert.Contains(t, got, tt.expected)
	}
}

func TestDiagnosticNarrative_WithCorrelations(t *testing.T) {
	got := diagnosticNarrative(analysis.DiagnosticResult{
		NegativeKeywords: []analysis.KeywordCount{{"slow", 4}, {"refund", 3}, {"late", 2}, {"rude", 1}},
		CorrelationInsights: []analysis.CorrelationInsight{
			{Pair: "a vs b", Correlation: 0.9}, {Pair: "a vs c", Correlation: -0.4},
		},
	})
	assert.Equal(t, "Root cause analysis identifies key negative indicators: slow, refund, late. "+
		"Statistical correlations reveal 2 significant relationships between features, suggesting structured data dynamics.", got)
}

func TestKPIs(t *testing.T) {
	got := kpis(analysis.EDAResult{TotalRecords: 12000, AverageTextLength: 42},
		analysis.DescriptiveResult{PositivePercentage: 40, NegativePercentage: 36})
	assert.Equal(t, []KPI{
		{Label: "Total Records", Value: "12,000", Change: "+15%", Trend: "up"},
		{Label: "Avg Text Length", Value: "42", Change: "+8%", Trend: "up"},
		{Label: "Positive Rate", Value: "40.0%", Change: "-10.0%", Trend: "down"},
		{Label: "Negative Rate", Value: "36.0%", Change: "+6.0%", Trend: "up"},
	}, got)

	got = kpis(analysis.EDAResult{}, analysis.DescriptiveResult{PositivePercentage: 80, NegativePercentage: 10})
	assert.Equal(t, KPI{Label: "Positive Rate", Value: "80.0%", Change: "+30.0%", Trend: "up"}, got[2])
	assert.Equal(t, KPI{Label: "Negative Rate", Value: "10.0%", Change: "-20.0%", Trend: "down"}, got[3])
}

func TestForecast_Trained(t *testing.T) {
	got := forecast(analysis.Trained(analysis.Metrics{Accuracy: 0.8}), 1000)
	assert.Equal(t, []ForecastPoint{
		{"Current", 1000}, {"Month +1", 1120}, {"Month +2", 1254}, {"Month +3", 1404}, {"Month +4", 1573},
	}, got)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].Predicted, got[i-1].Predicted)
	}
}

func TestTrendIsMonotonic(t *testing.T) {
	ov := biOverview(analysis.EDAResult{TotalRecords: 1000})
	assert.Equal(t, []NameValue{{"Q1", 700}, {"Q2", 850}, {"Q3", 950}, {"Q4", 1000}}, ov.Trend)
}

func TestDistributionCapsAtEight(t *testing.T) {
	var words []analysis.WordCount
	for i := 0; i < 15; i++ {
		words = append(words, analysis.WordCount{Word: fmt.Sprintf("w%d", i), Count: 15 - i})
	}
	ov := biOverview(analysis.EDAResult{WordFrequency: words})
	assert.Len(t, ov.Distribution, 8)
	assert.Equal(t, CategoryValue{"w0", 15}, ov.Distribution[0])
}

func TestCorrelations_Padding(t *testing.T) {
	got := correlations(nil)
	require.Len(t, got, 3)
	for _, c := range got {
		assert.Equal(t, Correlation{Factor: "No significant correlation", Relationship: "neutral", Strength: 0}, c)
	}

	got = correlations([]analysis.CorrelationInsight{
		{Pair: "a vs b", Correlation: -0.5}, {Pair: "a vs c", Correlation: 0},
		{Pair: "b vs c", Correlation: 0.25}, {Pair: "c vs d", Correlation: 0.1},
	})
	require.Len(t, got, 4)
	assert.Equal(t, Correlation{Factor: "a vs b", Relationship: "negative", Strength: 0.5}, got[0])
	assert.Equal(t, "negative", got[1].Relationship)
	assert.Equal(t, "positive", got[2].Relationship)
}

func TestRecommendations(t *testing.T) {
	three := []analysis.CorrelationInsight{{}, {}, {}}

	recs := recommendations(analysis.DescriptiveResult{NegativePercentage: 45, PositivePercentage: 20}, analysis.DiagnosticResult{CorrelationInsights: three})
	assert.Equal(t, "Implement Customer Feedback Loop", recs[0].Action)
	assert.Equal(t, "High", recs[0].Priority)
	assert.Equal(t, "Leverage Feature Relationships", recs[1].Action)
	assert.Equal(t, "High", recs[2].Priority)

	recs = recommendations(analysis.DescriptiveResult{NegativePercentage: 40, PositivePercentage: 61}, analysis.DiagnosticResult{CorrelationInsights: three[:2]})
	assert.Equal(t, "Scale Positive Messaging", recs[0].Action)
	assert.Equal(t, "Medium", recs[0].Priority)
	assert.Equal(t, "Enhance Data Collection", recs[1].Action)
	assert.Equal(t, "Low", recs[2].Priority)
}
