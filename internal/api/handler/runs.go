package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kiranshivaraju/sentilytics/internal/api/response"
	"github.com/kiranshivaraju/sentilytics/internal/store"
	"github.com/kiranshivaraju/sentilytics/pkg/models"
)

// RunLog reads the analysis run log.
type RunLog interface {
	ListRuns(ctx context.Context, filter store.RunFilter) ([]*models.AnalysisRun, error)
	GetRun(ctx context.Context, id uuid.UUID) (*models.AnalysisRun, error)
}

// NewListRunsHandler returns an http.HandlerFunc for GET /runs.
func NewListRunsHandler(svc RunLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		limit := store.DefaultListLimit
		if v := q.Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > store.MaxListLimit {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
					"limit must be an integer between 1 and "+strconv.Itoa(store.MaxListLimit), nil)
				return
			}
			limit = n
		}

		status := q.Get("status")
		if status != "" && status != models.RunStatusSucceeded && status != models.RunStatusFailed {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"status must be one of: "+models.RunStatusSucceeded+", "+models.RunStatusFailed, nil)
			return
		}

		runs, err := svc.ListRuns(r.Context(), store.RunFilter{
			Status:      status,
			Fingerprint: q.Get("fingerprint"),
			Limit:       limit,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if runs == nil {
			runs = []*models.AnalysisRun{}
		}
		response.Collection(w, runs, response.ListMeta{Limit: limit, Count: len(runs)})
	}
}

// NewGetRunHandler returns an http.HandlerFunc for GET /runs/{runID}.
func NewGetRunHandler(svc RunLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "runID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "runID must be a valid UUID", nil)
			return
		}
		run, err := svc.GetRun(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		response.JSON(w, run)
	}
}
