// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Treedy2020/FinalCheck/cmd/finalcheck-api/handlers"
	"github.com/Treedy2020/FinalCheck/cmd/finalcheck-api/middleware"
	"github.com/Treedy2020/FinalCheck/internal/config"
	"github.com/Treedy2020/FinalCheck/internal/observability"
	"github.com/Treedy2020/FinalCheck/internal/storage"
	"github.com/Treedy2020/FinalCheck/pkg/compliance"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, client *compliance.Client, reports *storage.ReportRepository) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.WriteTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"finalcheck"}`))
	})

	analyzeHandler := handlers.NewAnalyzeHandler(logger, client, reports, cfg.Pipeline.MaxFileBytes)
	catalogHandler := handlers.NewCatalogHandler(logger, client)
	reportsHandler := handlers.NewReportsHandler(logger, reports)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", analyzeHandler.Analyze)

		r.Get("/standards", catalogHandler.ListStandards)
		r.Get("/products", catalogHandler.ListProducts)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", reportsHandler.List)
			r.Get("/{reportId}", reportsHandler.Get)
			r.Delete("/{reportId}", reportsHandler.Delete)
		})
	})

	return r
}
