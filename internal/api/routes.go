package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check (no dataset required)
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		// Batch: the whole loaded dataset, scored
		r.Get("/scores", h.GetScores)
		r.Get("/scores/summary", h.GetScoreSummary)

		// Per-account lookups
		r.Get("/accounts/{accountID}/score", h.GetAccountScore)
		r.Get("/accounts/{accountID}/action", h.GetAccountAction)

		// Score caller-supplied records
		r.Post("/score", h.ScoreRecords)
	})

	return r
}
