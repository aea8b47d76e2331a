package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/frontdesk/internal/ports/primary"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(escalations primary.EscalationService, knowledge primary.KnowledgeService) {
	h := NewDashboardHandler(escalations, knowledge)

	s.App.Get("/healthz", h.Health)

	s.App.Get("/api/requests", h.ListRequests)
	s.App.Post("/api/requests/:id/answer", h.AnswerRequest)
	s.App.Get("/api/knowledge", h.ListKnowledge)
	s.App.Get("/api/history", h.History)

	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
