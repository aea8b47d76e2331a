package server

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/example/frontdesk/internal/core/escalation"
	"github.com/example/frontdesk/internal/ports/primary"
)

// DashboardHandler serves the supervisor dashboard API.
type DashboardHandler struct {
	escalations primary.EscalationService
	knowledge   primary.KnowledgeService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(escalations primary.EscalationService, knowledge primary.KnowledgeService) *DashboardHandler {
	return &DashboardHandler{
		escalations: escalations,
		knowledge:   knowledge,
	}
}

// Health reports liveness.
func (h *DashboardHandler) Health(c fiber.Ctx) error {
	return jsonSuccess(c, fiber.Map{"healthy": true})
}

// ListRequests returns the escalation queue. Without a status query it shows
// the supervisor's work list (pending); ?status=all returns everything.
func (h *DashboardHandler) ListRequests(c fiber.Ctx) error {
	status := c.Query("status", string(escalation.StatusPending))

	var filters primary.EscalationFilters
	if status != "all" {
		if !escalation.Status(status).Valid() {
			return jsonError(c, fiber.StatusBadRequest, "unknown status: "+status)
		}
		filters.Status = status
	}

	requests, err := h.escalations.List(c.Context(), filters)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list requests")
	}

	return jsonSuccess(c, requests)
}

// answerRequestBody is the POST /api/requests/:id/answer payload.
type answerRequestBody struct {
	Answer string `json:"answer"`
}

// AnswerRequest records a supervisor answer for a pending escalation.
func (h *DashboardHandler) AnswerRequest(c fiber.Ctx) error {
	id := c.Params("id")

	var body answerRequestBody
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(body.Answer) == "" {
		return jsonError(c, fiber.StatusBadRequest, "answer cannot be empty")
	}

	resolved, err := h.escalations.Resolve(c.Context(), id, body.Answer)
	if err != nil {
		switch {
		case errors.Is(err, escalation.ErrNotFound):
			return jsonError(c, fiber.StatusNotFound, "request not found")
		case errors.Is(err, escalation.ErrInvalidTransition):
			return jsonError(c, fiber.StatusConflict, "request is already answered")
		default:
			return jsonError(c, fiber.StatusInternalServerError, "failed to answer request")
		}
	}

	return jsonSuccess(c, resolved)
}

// ListKnowledge returns every learned answer, oldest first.
func (h *DashboardHandler) ListKnowledge(c fiber.Ctx) error {
	entries, err := h.knowledge.List(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list knowledge base")
	}
	return jsonSuccess(c, entries)
}

// History returns all escalations with summary statistics.
func (h *DashboardHandler) History(c fiber.Ctx) error {
	all, err := h.escalations.List(c.Context(), primary.EscalationFilters{})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list history")
	}

	var pending, resolved, delivered int
	for _, e := range all {
		switch escalation.Status(e.Status) {
		case escalation.StatusPending:
			pending++
		case escalation.StatusResolved:
			resolved++
		case escalation.StatusDelivered:
			delivered++
		}
	}

	resolutionRate := 0.0
	if len(all) > 0 {
		resolutionRate = float64(resolved+delivered) / float64(len(all))
	}

	return jsonSuccess(c, fiber.Map{
		"requests": all,
		"stats": fiber.Map{
			"total":           len(all),
			"pending":         pending,
			"resolved":        resolved,
			"delivered":       delivered,
			"resolution_rate": resolutionRate,
		},
	})
}

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}
