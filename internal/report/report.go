// Package report runs the analytics stages over a cleaned table and shapes
// their output into the dashboard report.
package report

import (
	"context"

	"github.com/kiranshivaraju/sentilytics/internal/analysis"
	"github.com/kiranshivaraju/sentilytics/internal/sentiment"
	"github.com/kiranshivaraju/sentilytics/internal/table"
)

// Report is the five-section dashboard document.
type Report struct {
	BIOverview   BIOverview   `json:"biOverview"`
	Descriptive  Descriptive  `json:"descriptive"`
	Diagnostic   Diagnostic   `json:"diagnostic"`
	Predictive   Predictive   `json:"predictive"`
	Prescriptive Prescriptive `json:"prescriptive"`
}

type BIOverview struct {
	Composition  []LabelValue    `json:"composition"`
	Trend        []NameValue     `json:"trend"`
	Distribution []CategoryValue `json:"distribution"`
}

type LabelValue struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type CategoryValue struct {
	Category string `json:"category"`
	Value    int    `json:"value"`
}

type Descriptive struct {
	KPIs      []KPI                `json:"kpis"`
	Narrative string               `json:"narrative"`
	ChartData []analysis.WordCount `json:"chartData"`
}

// KPI is a dashboard metric card.
type KPI struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"`
}

type Diagnostic struct {
	Narrative    string        `json:"narrative"`
	Correlations []Correlation `json:"correlations"`
}

type Correlation struct {
	Factor       string  `json:"factor"`
	Relationship string  `json:"relationship"`
	Strength     float64 `json:"strength"`
}

type Predictive struct {
	Narrative        string          `json:"narrative"`
	Forecast         []ForecastPoint `json:"forecast"`
	Confidence       float64         `json:"confidence"`
	ModelExplanation string          `json:"modelExplanation"`
}

type ForecastPoint struct {
	Period    string `json:"period"`
	Predicted int    `json:"predicted"`
}

type Prescriptive struct {
	Narrative       string           `json:"narrative"`
	Recommendations []Recommendation `json:"recommendations"`
	Disclaimer      string           `json:"disclaimer"`
}

type Recommendation struct {
	Action   string `json:"action"`
	Impact   string `json:"impact"`
	Priority string `json:"priority"`
}

// Stages holds the raw output of every stage plus the advisory line.
type Stages struct {
	EDA          analysis.EDAResult         `json:"eda"`
	Descriptive  analysis.DescriptiveResult `json:"descriptive_analytics"`
	Diagnostic   analysis.DiagnosticResult  `json:"diagnostic_analytics"`
	Predictive   analysis.PredictiveResult  `json:"predictive_analytics"`
	Prescriptive string                     `json:"prescriptive_analytics"`
}

// RunStages runs the four stages in order. Any stage error other than a
// predictive degradation aborts the run.
func RunStages(ctx context.Context, t *table.Table, s sentiment.Scorer) (Stages, error) {
	eda, err := analysis.EDA(ctx, t, s)
	if err != nil {
		return Stages{}, err
	}
	desc, err := analysis.Descriptive(ctx, t, s)
	if err != nil {
		return Stages{}, err
	}
	diag, err := analysis.Diagnostic(ctx, t, s)
	if err != nil {
		return Stages{}, err
	}
	pred := analysis.Predictive(ctx, t, s)

	return Stages{
		EDA:          eda,
		Descriptive:  desc,
		Diagnostic:   diag,
		Predictive:   pred,
		Prescriptive: advisory(desc),
	}, nil
}

// Run executes every stage and assembles the report.
func Run(ctx context.Context, t *table.Table, s sentiment.Scorer) (Report, error) {
	st, err := RunStages(ctx, t, s)
	if err != nil {
		return Report{}, err
	}
	return Assemble(st), nil
}

// Assemble shapes stage output into a Report. It performs no scoring.
func Assemble(st Stages) Report {
	return Report{
		BIOverview: biOverview(st.EDA),
		Descriptive: Descriptive{
			KPIs:      kpis(st.EDA, st.Descriptive),
			Narrative: descriptiveNarrative(st.EDA, st.Descriptive),
			ChartData: nonNil(st.EDA.WordFrequency),
		},
		Diagnostic: Diagnostic{
			Narrative:    diagnosticNarrative(st.Diagnostic),
			Correlations: correlations(st.Diagnostic.CorrelationInsights),
		},
		Predictive: Predictive{
			Narrative:        predictiveNarrative(st.Predictive),
			Forecast:         forecast(st.Predictive, st.EDA.TotalRecords),
			Confidence:       confidence(st.Predictive),
			ModelExplanation: modelExplanation(st.Predictive, st.EDA.TotalRecords),
		},
		Prescriptive: Prescriptive{
			Narrative:       prescriptiveNarrative(st.Descriptive),
			Recommendations: recommendations(st.Descriptive, st.Diagnostic),
			Disclaimer:      Disclaimer,
		},
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
