package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/application/reports"
)

// AlertsHandler maneja las alertas operativas de inventario.
type AlertsHandler struct {
	uc *reports.AlertsUseCase
}

// NewAlertsHandler construye el handler.
func NewAlertsHandler(uc *reports.AlertsUseCase) *AlertsHandler {
	return &AlertsHandler{uc: uc}
}

// List devuelve lotes en o bajo el umbral de stock y lotes próximos a vencer.
// GET /api/alerts?branch_id=
func (h *AlertsHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Alerts(c.Context(), c.Query("branch_id", GetBranchID(c)))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(out)
}
