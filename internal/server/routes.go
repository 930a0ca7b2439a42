package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mindline/internal/alert"
	"mindline/internal/catalog"
	"mindline/internal/db"
	"mindline/internal/handlers"
	"mindline/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(database *db.DB, analyzer handlers.Analyzer, cat *catalog.Catalog, alerts *alert.Service, logger *slog.Logger) {
	authMiddleware := middleware.NewAuthMiddleware(s.Cfg.AuthToken)

	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, database, alerts, logger)
	keywordHandler := handlers.NewKeywordHandler(database, cat)
	patientHandler := handlers.NewPatientHandler(database)
	institutionHandler := handlers.NewInstitutionHandler(database)
	statusHandler := handlers.NewStatusHandler(database, s.Cfg)

	// Operational endpoints, unauthenticated
	s.App.Get("/healthz", statusHandler.Healthz)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// JSON API, service-token auth
	api := s.App.Group("/api", authMiddleware.RequireToken)

	api.Post("/analyze", analyzeHandler.Analyze)

	api.Get("/keywords", keywordHandler.List)
	api.Post("/keywords", keywordHandler.Create)
	api.Patch("/keywords/:id", keywordHandler.UpdateWeight)
	api.Post("/keywords/:id/activate", keywordHandler.Activate)
	api.Delete("/keywords/:id", keywordHandler.Deactivate)

	api.Get("/institutions/:slug", institutionHandler.GetBySlug)

	api.Get("/patients/high-risk", patientHandler.HighRisk)
	api.Get("/patients/:id", patientHandler.Get)
	api.Get("/patients/:id/history", patientHandler.History)
}
