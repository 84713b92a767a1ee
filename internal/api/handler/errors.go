package handler

import (
	"errors"
	"net/http"

	"github.com/kiranshivaraju/sentilytics/internal/api/response"
	"github.com/kiranshivaraju/sentilytics/internal/sentiment"
	"github.com/kiranshivaraju/sentilytics/internal/service"
	"github.com/kiranshivaraju/sentilytics/internal/store"
	"github.com/kiranshivaraju/sentilytics/internal/table"
)

// writeServiceError maps an error returned by the analysis service onto the
// error envelope. Unrecognized errors become a 500 that carries the message.
func writeServiceError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		response.Error(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
			"Request body too large", map[string]int64{"limit_bytes": tooLarge.Limit})
	case errors.Is(err, sentiment.ErrEmptyText):
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
			"'text' must be a non-empty string", nil)
	case errors.Is(err, table.ErrParse), errors.Is(err, table.ErrEmptyInput):
		response.Error(w, http.StatusBadRequest, "PARSE_ERROR", err.Error(), nil)
	case errors.Is(err, sentiment.ErrModelUnavailable):
		response.Error(w, http.StatusServiceUnavailable, "MODEL_UNAVAILABLE",
			"The sentiment model is not available", nil)
	case errors.Is(err, service.ErrRunLogDisabled):
		response.Error(w, http.StatusServiceUnavailable, "RUN_LOG_DISABLED", err.Error(), nil)
	case errors.Is(err, store.ErrNotFound):
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
	default:
		response.Error(w, http.StatusInternalServerError, "ANALYTICS_ERROR",
			"Failed to generate analytics report: "+err.Error(), nil)
	}
}
