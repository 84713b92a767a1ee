// Package service glues ingestion, the analytics pipeline, the report cache
// and the run log together for the HTTP and CLI front ends.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/sentilytics/internal/cache"
	"github.com/kiranshivaraju/sentilytics/internal/report"
	"github.com/kiranshivaraju/sentilytics/internal/sentiment"
	"github.com/kiranshivaraju/sentilytics/internal/store"
	"github.com/kiranshivaraju/sentilytics/internal/table"
	"github.com/kiranshivaraju/sentilytics/internal/textclean"
	"github.com/kiranshivaraju/sentilytics/pkg/models"
)

// ErrRunLogDisabled is returned by ListRuns when no database is configured.
var ErrRunLogDisabled = errors.New("run log is disabled: no database configured")

// ModelSource hands out the shared sentiment scorer.
type ModelSource interface {
	Get(ctx context.Context) (sentiment.Scorer, error)
	Loaded() bool
}

// AnalysisService runs analyses. The store and cache are optional; a nil
// value disables the run log or the report cache respectively.
type AnalysisService struct {
	models   ModelSource
	store    store.Store
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(ms ModelSource, st store.Store, ca cache.Cache, cacheTTL time.Duration) *AnalysisService {
	return &AnalysisService{
		models:   ms,
		store:    st,
		cache:    ca,
		cacheTTL: cacheTTL,
	}
}

// ModelLoaded reports whether the sentiment model has been initialized.
func (s *AnalysisService) ModelLoaded() bool {
	return s.models.Loaded()
}

// AnalyzeText scores a single text after normalization.
func (s *AnalysisService) AnalyzeText(ctx context.Context, text string) (sentiment.Score, error) {
	text = textclean.Clean(text)
	if text == "" {
		return sentiment.Score{}, sentiment.ErrEmptyText
	}

	scorer, err := s.models.Get(ctx)
	if err != nil {
		return sentiment.Score{}, err
	}
	scores, err := scorer.Score(ctx, []string{text})
	if err != nil {
		return sentiment.Score{}, fmt.Errorf("score text with %s: %w", scorer.Name(), err)
	}
	if len(scores) != 1 {
		return sentiment.Score{}, fmt.Errorf("%s returned %d scores for 1 text", scorer.Name(), len(scores))
	}
	return sentiment.Score{
		Label:      sentiment.NormalizeLabel(scores[0].Label),
		Confidence: math.Max(0, math.Min(1, scores[0].Confidence)),
	}, nil
}

// AnalyzeTable cleans raw and returns its dashboard report. Reports for an
// identical cleaned table scored by the same backend are served from the
// cache when one is configured. Every call is recorded in the run log.
func (s *AnalysisService) AnalyzeTable(ctx context.Context, source string, raw *table.Table) (report.Report, error) {
	start := time.Now()
	t := table.Clean(raw)
	run := newRun(source, t)

	rep, err := s.analyze(ctx, t, run)
	run.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		msg := err.Error()
		run.Status = models.RunStatusFailed
		run.ErrorMessage = &msg
		slog.Error("analysis failed", "run_id", run.ID, "source", source, "error", err)
	}
	s.record(ctx, run)
	return rep, err
}

func (s *AnalysisService) analyze(ctx context.Context, t *table.Table, run *models.AnalysisRun) (report.Report, error) {
	scorer, err := s.models.Get(ctx)
	if err != nil {
		return report.Report{}, err
	}
	run.Backend = scorer.Name()

	key := cache.ReportKey(scorer.Name(), run.Fingerprint)
	if rep, ok := s.cached(ctx, key); ok {
		run.CacheHit = true
		return rep, nil
	}

	st, err := report.RunStages(ctx, t, scorer)
	if err != nil {
		return report.Report{}, fmt.Errorf("analytics pipeline: %w", err)
	}
	status := string(st.Predictive.Status)
	run.PredictiveStatus = &status

	rep := report.Assemble(st)
	s.cacheReport(ctx, key, rep)
	return rep, nil
}

// AnalyzeStages cleans raw and returns the raw stage output. It bypasses the
// cache and the run log.
func (s *AnalysisService) AnalyzeStages(ctx context.Context, raw *table.Table) (report.Stages, error) {
	scorer, err := s.models.Get(ctx)
	if err != nil {
		return report.Stages{}, err
	}
	st, err := report.RunStages(ctx, table.Clean(raw), scorer)
	if err != nil {
		return report.Stages{}, fmt.Errorf("analytics pipeline: %w", err)
	}
	return st, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *AnalysisService) ListRuns(ctx context.Context, filter store.RunFilter) ([]*models.AnalysisRun, error) {
	if s.store == nil {
		return nil, ErrRunLogDisabled
	}
	return s.store.ListRuns(ctx, filter)
}

// GetRun returns one run by ID.
func (s *AnalysisService) GetRun(ctx context.Context, id uuid.UUID) (*models.AnalysisRun, error) {
	if s.store == nil {
		return nil, ErrRunLogDisabled
	}
	return s.store.GetRun(ctx, id)
}

func newRun(source string, t *table.Table) *models.AnalysisRun {
	run := &models.AnalysisRun{
		ID:          uuid.New(),
		Source:      source,
		Fingerprint: t.Fingerprint(),
		Rows:        t.NumRows(),
		Columns:     t.NumColumns(),
		Status:      models.RunStatusSucceeded,
		CreatedAt:   time.Now().UTC(),
	}
	if col, ok := t.TextColumn(); ok {
		name := t.Columns()[col]
		run.TextColumn = &name
	}
	return run
}

func (s *AnalysisService) cached(ctx context.Context, key string) (report.Report, bool) {
	if s.cache == nil {
		return report.Report{}, false
	}
	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("report cache read failed", "key", key, "error", err)
		return report.Report{}, false
	}
	if !found {
		return report.Report{}, false
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		slog.Warn("discarding undecodable cached report", "key", key, "error", err)
		return report.Report{}, false
	}
	return rep, true
}

func (s *AnalysisService) cacheReport(ctx context.Context, key string, rep report.Report) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(rep)
	if err != nil {
		slog.Warn("report encode failed", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		slog.Warn("report cache write failed", "key", key, "error", err)
	}
}

// record writes run to the run log. Failures are logged, never returned.
func (s *AnalysisService) record(ctx context.Context, run *models.AnalysisRun) {
	if s.store == nil {
		return
	}
	if err := s.store.CreateRun(context.WithoutCancel(ctx), run); err != nil {
		slog.Warn("failed to record analysis run", "run_id", run.ID, "error", err)
	}
}
