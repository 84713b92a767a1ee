package report

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/kiranshivaraju/sentilytics/internal/analysis"
)

const (
	positiveBaseline    = 50
	negativeBaseline    = 30
	minCorrelations     = 3
	untrainedConfidence = 0.65
)

var trendFractions = []struct {
	name     string
	fraction float64
}{
	{"Q1", 0.7},
	{"Q2", 0.85},
	{"Q3", 0.95},
}

func biOverview(eda analysis.EDAResult) BIOverview {
	composition := make([]LabelValue, 0, len(eda.SentimentDistribution))
	for _, c := range eda.SentimentDistribution {
		composition = append(composition, LabelValue{Label: c.Label, Value: c.Count})
	}
	if len(composition) == 0 {
		composition = []LabelValue{{Label: "Unknown", Value: 100}}
	}

	trend := make([]NameValue, 0, len(trendFractions)+1)
	for _, tf := range trendFractions {
		trend = append(trend, NameValue{Name: tf.name, Value: int(float64(eda.TotalRecords) * tf.fraction)})
	}
	trend = append(trend, NameValue{Name: "Q4", Value: eda.TotalRecords})

	distribution := make([]CategoryValue, 0, 8)
	for i, w := range eda.WordFrequency {
		if i == 8 {
			break
		}
		distribution = append(distribution, CategoryValue{Category: w.Word, Value: w.Count})
	}
	if len(distribution) == 0 {
		distribution = []CategoryValue{{Category: "No data", Value: 0}}
	}

	return BIOverview{Composition: composition, Trend: trend, Distribution: distribution}
}

func kpis(eda analysis.EDAResult, d analysis.DescriptiveResult) []KPI {
	pos, neg := d.PositivePercentage, d.NegativePercentage

	posTrend := "down"
	if pos > positiveBaseline {
		posTrend = "up"
	}
	negTrend := "up"
	if neg < negativeBaseline {
		negTrend = "down"
	}

	return []KPI{
		{Label: "Total Records", Value: humanize.Comma(int64(eda.TotalRecords)), Change: "+15%", Trend: "up"},
		{Label: "Avg Text Length", Value: fmt.Sprintf("%d", eda.AverageTextLength), Change: "+8%", Trend: "up"},
		{Label: "Positive Rate", Value: percent(pos), Change: delta(pos, positiveBaseline), Trend: posTrend},
		{Label: "Negative Rate", Value: percent(neg), Change: delta(neg, negativeBaseline), Trend: negTrend},
	}
}

func percent(v float64) string { return fmt.Sprintf("%.1f%%", v) }

// delta renders v against baseline, signed explicitly only when above it.
func delta(v, baseline float64) string {
	sign := ""
	if v > baseline {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, v-baseline)
}

var baselineGrowth = []float64{1.05, 1.12, 1.18}

func forecast(p analysis.PredictiveResult, total int) []ForecastPoint {
	points := []ForecastPoint{{Period: "Current", Predicted: total}}
	if !p.IsTrained() {
		for i, g := range baselineGrowth {
			points = append(points, ForecastPoint{Period: fmt.Sprintf("Month +%d", i+1), Predicted: int(float64(total) * g)})
		}
		return points
	}

	growth := 1 + p.Accuracy*0.15
	for i := 1; i <= 4; i++ {
		points = append(points, ForecastPoint{
			Period:    fmt.Sprintf("Month +%d", i),
			Predicted: int(float64(total) * math.Pow(growth, float64(i))),
		})
	}
	return points
}

func confidence(p analysis.PredictiveResult) float64 {
	if p.IsTrained() {
		return p.Accuracy
	}
	return untrainedConfidence
}

func correlations(insights []analysis.CorrelationInsight) []Correlation {
	out := make([]Correlation, 0, max(len(insights), minCorrelations))
	for _, in := range insights {
		rel := "negative"
		if in.Correlation > 0 {
			rel = "positive"
		}
		out = append(out, Correlation{Factor: in.Pair, Relationship: rel, Strength: math.Abs(in.Correlation)})
	}
	for len(out) < minCorrelations {
		out = append(out, Correlation{Factor: "No significant correlation", Relationship: "neutral", Strength: 0})
	}
	return out
}

func recommendations(d analysis.DescriptiveResult, diag analysis.DiagnosticResult) []Recommendation {
	recs := make([]Recommendation, 0, 3)

	if d.NegativePercentage > 40 {
		recs = append(recs, Recommendation{
			Action:   "Implement Customer Feedback Loop",
			Impact:   "Address negative sentiment drivers through systematic customer engagement and issue resolution protocols.",
			Priority: "High",
		})
	} else {
		recs = append(recs, Recommendation{
			Action:   "Scale Positive Messaging",
			Impact:   "Amplify successful communication strategies across additional channels to maximize reach and engagement.",
			Priority: "Medium",
		})
	}

	if len(diag.CorrelationInsights) > 2 {
		recs = append(recs, Recommendation{
			Action:   "Leverage Feature Relationships",
			Impact:   "Exploit discovered correlations to optimize predictive accuracy and identify intervention points.",
			Priority: "High",
		})
	} else {
		recs = append(recs, Recommendation{
			Action:   "Enhance Data Collection",
			Impact:   "Expand feature set to capture additional dimensions and improve analytical depth.",
			Priority: "Medium",
		})
	}

	monitoring := "High"
	if d.PositivePercentage > 60 {
		monitoring = "Low"
	}
	recs = append(recs, Recommendation{
		Action:   "Establish Continuous Monitoring",
		Impact:   "Deploy real-time analytics dashboards to track KPIs and enable rapid response to emerging patterns.",
		Priority: monitoring,
	})
	return recs
}
