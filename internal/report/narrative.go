package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/kiranshivaraju/sentilytics/internal/analysis"
)

// rule maps a predicate over stage output to a text. Rules are evaluated in
// order; the first match wins.
type rule[T any] struct {
	when func(T) bool
	text func(T) string
}

func always[T any](T) bool { return true }

func fixed[T any](s string) func(T) string {
	return func(T) string { return s }
}

func firstMatch[T any](rules []rule[T], v T) string {
	for _, r := range rules {
		if r.when(v) {
			return r.text(v)
		}
	}
	return ""
}

// Disclaimer accompanies every set of recommendations.
const Disclaimer = "Recommendations are generated through statistical analysis and should be " +
	"validated by domain experts. Results are indicative and not guaranteed. " +
	"Always conduct additional due diligence before implementing strategic changes."

type sentimentShare struct {
	positive, negative float64
}

func shareOf(d analysis.DescriptiveResult) sentimentShare {
	return sentimentShare{positive: d.PositivePercentage, negative: d.NegativePercentage}
}

var advisoryRules = []rule[sentimentShare]{
	{
		when: func(s sentimentShare) bool { return s.negative > 50 },
		text: fixed[sentimentShare]("High negative sentiment detected. Prioritize customer feedback loops and rapid remediation."),
	},
	{
		when: func(s sentimentShare) bool { return s.positive > 70 },
		text: fixed[sentimentShare]("Strong positive sentiment. Scale current messaging and reinforce top-performing channels."),
	},
	{
		when: always[sentimentShare],
		text: fixed[sentimentShare]("Sentiment is mixed. Focus on improving consistency and monitoring key drivers weekly."),
	},
}

func advisory(d analysis.DescriptiveResult) string {
	return firstMatch(advisoryRules, shareOf(d))
}

var prescriptiveRules = []rule[sentimentShare]{
	{
		when: func(s sentimentShare) bool { return s.negative > 50 },
		text: fixed[sentimentShare]("Strategic intervention required. High negative sentiment demands immediate action. " +
			"Recommend forming cross-functional task force to address root causes and implement " +
			"rapid response protocols. Monitor weekly KPIs for improvement signals."),
	},
	{
		when: func(s sentimentShare) bool { return s.positive > 70 },
		text: fixed[sentimentShare]("Momentum preservation strategy advised. Strong positive indicators suggest current " +
			"approach is effective. Scale successful initiatives while maintaining vigilance on " +
			"quality metrics. Consider expanding reach to capture broader market segments."),
	},
	{
		when: always[sentimentShare],
		text: fixed[sentimentShare]("Balanced optimization approach recommended. Mixed sentiment patterns indicate opportunities " +
			"for targeted improvements. Focus resources on consistency enhancement and systematic " +
			"monitoring of key performance drivers to establish positive trajectory."),
	},
}

func prescriptiveNarrative(d analysis.DescriptiveResult) string {
	return firstMatch(prescriptiveRules, shareOf(d))
}

var outlookRules = []rule[sentimentShare]{
	{when: func(s sentimentShare) bool { return s.positive > 70 }, text: fixed[sentimentShare]("celebration")},
	{when: func(s sentimentShare) bool { return s.negative > 40 }, text: fixed[sentimentShare]("attention")},
	{when: always[sentimentShare], text: fixed[sentimentShare]("monitoring")},
}

func descriptiveNarrative(eda analysis.EDAResult, d analysis.DescriptiveResult) string {
	share := shareOf(d)
	tone := "concerning"
	if share.positive > share.negative {
		tone = "favorable"
	}
	return fmt.Sprintf(
		"Analysis of %s records reveals a sentiment distribution with %.1f%% positive and %.1f%% negative responses. "+
			"The dataset demonstrates %s patterns that warrant %s.",
		humanize.Comma(int64(eda.TotalRecords)), share.positive, share.negative, tone, firstMatch(outlookRules, share))
}

var diagnosticRules = []rule[analysis.DiagnosticResult]{
	{
		when: func(d analysis.DiagnosticResult) bool { return len(d.NegativeKeywords) > 0 },
		text: func(d analysis.DiagnosticResult) string {
			top := make([]string, 0, 3)
			for i, k := range d.NegativeKeywords {
				if i == 3 {
					break
				}
				top = append(top, k.Keyword)
			}
			relations, dynamics := "Limited correlation patterns detected", "independent"
			if n := len(d.CorrelationInsights); n > 0 {
				relations = fmt.Sprintf("Statistical correlations reveal %d significant relationships", n)
				dynamics = "structured"
			}
			return fmt.Sprintf("Root cause analysis identifies key negative indicators: %s. %s between features, suggesting %s data dynamics.",
				strings.Join(top, ", "), relations, dynamics)
		},
	},
	{
		when: always[analysis.DiagnosticResult],
		text: fixed[analysis.DiagnosticResult]("Diagnostic analysis completed with limited negative indicators detected."),
	},
}

func diagnosticNarrative(d analysis.DiagnosticResult) string {
	return firstMatch(diagnosticRules, d)
}

var predictiveRules = []rule[analysis.PredictiveResult]{
	{
		when: analysis.PredictiveResult.IsTrained,
		text: func(p analysis.PredictiveResult) string {
			reliability, benchmark := "moderate", "meets"
			if p.Accuracy > 0.8 {
				reliability = "strong"
			}
			if p.Accuracy > 0.85 {
				benchmark = "exceeds"
			}
			return fmt.Sprintf("Predictive model successfully trained with %.1f%% accuracy and %.3f F1-score. "+
				"Forward-looking projections indicate %s reliability for sentiment prediction tasks. "+
				"Model performance %s industry benchmarks.",
				p.Accuracy*100, p.F1Score, reliability, benchmark)
		},
	},
	{
		when: always[analysis.PredictiveResult],
		text: fixed[analysis.PredictiveResult]("Predictive modeling skipped due to insufficient training data. Minimum 10 text records required."),
	},
}

func predictiveNarrative(p analysis.PredictiveResult) string {
	return firstMatch(predictiveRules, p)
}

func modelExplanation(p analysis.PredictiveResult, total int) string {
	if !p.IsTrained() {
		return "Predictive model requires minimum dataset size for training reliability."
	}
	return fmt.Sprintf("Logistic Regression classifier trained on %d records using TF-IDF vectorization. "+
		"Model metrics: Accuracy=%.3f, F1-Score=%.3f", total, p.Accuracy, p.F1Score)
}
