package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kiranshivaraju/sentilytics/internal/api/response"
	"github.com/kiranshivaraju/sentilytics/internal/sentiment"
)

// TextAnalyzer scores one piece of text.
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, text string) (sentiment.Score, error)
}

type textResponse struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// NewAnalyzeTextHandler returns an http.HandlerFunc for POST /analyze-text.
func NewAnalyzeTextHandler(svc TextAnalyzer, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		var payload map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			if isTooLarge(err) {
				writeServiceError(w, err)
				return
			}
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		raw, ok := payload["text"]
		if !ok {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Missing 'text' in request body", nil)
			return
		}
		var text string
		if err := json.Unmarshal(raw, &text); err != nil || strings.TrimSpace(text) == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "'text' must be a non-empty string", nil)
			return
		}

		score, err := svc.AnalyzeText(r.Context(), text)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		response.Raw(w, http.StatusOK, textResponse{Sentiment: score.Label, Confidence: score.Confidence})
	}
}
