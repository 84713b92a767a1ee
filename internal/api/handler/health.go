package handler

import (
	"context"
	"net/http"

	"github.com/kiranshivaraju/sentilytics/internal/api/response"
)

// Pinger is a dependency that can report its connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ModelStatus reports whether the sentiment model has been initialized.
type ModelStatus interface {
	ModelLoaded() bool
}

const (
	ServiceDatabase = "database"
	ServiceCache    = "cache"
)

// NewHealthHandler returns an http.HandlerFunc for GET /health. Only the
// dependencies present in deps are pinged; the others report "disabled".
func NewHealthHandler(model ModelStatus, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			ServiceDatabase: "disabled",
			ServiceCache:    "disabled",
		}

		degraded := false
		for name, p := range deps {
			checks[name] = "ok"
			if err := p.Ping(r.Context()); err != nil {
				checks[name] = "degraded"
				degraded = true
			}
		}

		if degraded {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":       "ok",
			"model_loaded": model.ModelLoaded(),
			"services":     checks,
		})
	}
}
