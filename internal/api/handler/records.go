package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kiranshivaraju/sentilytics/internal/api/response"
	"github.com/kiranshivaraju/sentilytics/internal/report"
	"github.com/kiranshivaraju/sentilytics/internal/table"
	"github.com/kiranshivaraju/sentilytics/pkg/models"
)

// StageAnalyzer returns the raw per-stage output for a table.
type StageAnalyzer interface {
	AnalyzeStages(ctx context.Context, raw *table.Table) (report.Stages, error)
}

// NewAnalyzeRecordsHandler returns an http.HandlerFunc for POST /analyze.
func NewAnalyzeRecordsHandler(svc TableAnalyzer, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := decodeRecords(w, r, maxBytes)
		if !ok {
			return
		}
		rep, err := svc.AnalyzeTable(r.Context(), models.SourceJSON, t)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		response.Raw(w, http.StatusOK, rep)
	}
}

// NewStagesHandler returns an http.HandlerFunc for POST /analyze/stages.
func NewStagesHandler(svc StageAnalyzer, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := decodeRecords(w, r, maxBytes)
		if !ok {
			return
		}
		st, err := svc.AnalyzeStages(r.Context(), t)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		response.Raw(w, http.StatusOK, st)
	}
}

// decodeRecords reads {"data": [ {...}, ... ]} into a table, writing the
// error response itself when the body is unusable.
func decodeRecords(w http.ResponseWriter, r *http.Request, maxBytes int64) (*table.Table, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		if isTooLarge(err) {
			writeServiceError(w, err)
			return nil, false
		}
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return nil, false
	}
	raw, ok := payload["data"]
	if !ok {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Missing 'data' in request body", nil)
		return nil, false
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil || len(records) == 0 {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "'data' must be a non-empty array", nil)
		return nil, false
	}

	t, err := table.FromRecords(records)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "PARSE_ERROR", "Failed to parse JSON data: "+err.Error(), nil)
		return nil, false
	}
	return t, true
}
