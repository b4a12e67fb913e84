package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/observability"
)

// OpsHandler exposes operational counters for admins.
type OpsHandler struct {
	metrics *observability.Metrics
}

// NewOpsHandler constructs handler.
func NewOpsHandler(metrics *observability.Metrics) *OpsHandler {
	return &OpsHandler{metrics: metrics}
}

// Metrics handles GET /admin/metrics.
func (h *OpsHandler) Metrics(c *fiber.Ctx) error {
	requests, errors := h.metrics.Snapshot()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"requests": requests,
		"errors":   errors,
	}})
}
