package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	mw "github.com/kiranshivaraju/sentilytics/internal/api/middleware"
	"github.com/kiranshivaraju/sentilytics/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	// RateLimit is nil when no cache is configured.
	RateLimit      *mw.RateLimit
	AllowedOrigins []string

	HealthHandler         http.HandlerFunc
	AnalyzeTextHandler    http.HandlerFunc
	AnalyzeDatasetHandler http.HandlerFunc
	AnalyzeHandler        http.HandlerFunc
	StagesHandler         http.HandlerFunc
	ListRunsHandler       http.HandlerFunc
	GetRunHandler         http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(cors.Handler(corsOptions(deps.AllowedOrigins)))

	r.Get("/health", orNotImplemented(deps.HealthHandler))

	r.Get("/runs", orNotImplemented(deps.ListRunsHandler))
	r.Get("/runs/{runID}", orNotImplemented(deps.GetRunHandler))

	// Analysis routes run the model and are rate limited when a cache is available.
	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		r.Post("/analyze-text", orNotImplemented(deps.AnalyzeTextHandler))
		r.Post("/analyze-dataset", orNotImplemented(deps.AnalyzeDatasetHandler))
		r.Post("/analyze", orNotImplemented(deps.AnalyzeHandler))
		r.Post("/analyze/stages", orNotImplemented(deps.StagesHandler))
	})

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{mw.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
