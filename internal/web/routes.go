package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/facegate/facegate/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Face operations
		r.Post("/enroll", s.faces.Enroll)
		r.Post("/verify", s.faces.Verify)
		r.Post("/identify", s.faces.Identify)
		r.Post("/inspect", s.faces.Inspect)

		// Subjects
		r.Delete("/subjects/{subjectID}", s.faces.DeleteSubject)

		// Stats
		r.Get("/stats", s.faces.Stats)
	})
}
