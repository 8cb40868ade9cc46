package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/application/reports"
)

// DashboardHandler maneja el resumen del tablero principal.
type DashboardHandler struct {
	uc *reports.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reports.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del día para el tablero.
// GET /api/dashboard/summary?branch_id=
//
// Respuesta: DashboardSummaryDTO (ventas y utilidad de hoy, conteo de
// productos, alertas de stock y vencimiento, top 5 del día, serie de los
// últimos 7 días con tendencia, últimas ventas). branch_id vacío explícito
// consolida todas las sucursales; sin el parámetro usa la del token.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context(), c.Query("branch_id", GetBranchID(c)))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	return c.JSON(summary)
}
