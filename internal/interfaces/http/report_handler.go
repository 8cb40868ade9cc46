package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/application/reports"
	"github.com/amigopos/amigo-pos/internal/domain"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler maneja reportes de ventas y sus exportaciones (admin/manager).
type ReportHandler struct {
	reporterUC *reports.ReporterUseCase
	exportUC   *reports.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reporterUC *reports.ReporterUseCase, exportUC *reports.ExportUseCase) *ReportHandler {
	return &ReportHandler{reporterUC: reporterUC, exportUC: exportUC}
}

// Sales godoc
// @Summary      Reporte de ventas de un rango de fechas
// @Description  Totales del período (ingresos, utilidad, unidades, número de
// @Description  ventas), top de productos, serie diaria con tendencia y
// @Description  rotación de inventario. Con group_by_product=true agrega el
// @Description  desglose por producto con apertura y cierre de stock.
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        preset            query  string  false  "today | week | month | all | custom"  default(today)
// @Param        from              query  string  false  "YYYY-MM-DD (con preset=custom)"
// @Param        to                query  string  false  "YYYY-MM-DD inclusivo (con preset=custom)"
// @Param        branch_id         query  string  false  "vacío = todas las sucursales"
// @Param        group_by_product  query  bool    false  "incluir desglose por producto"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var req dto.DateRangeRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	out, err := h.reporterUC.SalesReport(c.Context(), req, c.QueryBool("group_by_product", false))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ExportXLSX godoc
// @Summary      Exportar el reporte de ventas a Excel
// @Tags         reports
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        preset     query  string  false  "today | week | month | all | custom"
// @Param        from       query  string  false  "YYYY-MM-DD"
// @Param        to         query  string  false  "YYYY-MM-DD inclusivo"
// @Param        branch_id  query  string  false  "vacío = todas las sucursales"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales/export.xlsx [get]
func (h *ReportHandler) ExportXLSX(c *fiber.Ctx) error {
	var req dto.DateRangeRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	data, filename, err := h.exportUC.SalesXLSX(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ExportXML godoc
// @Summary      Exportar las ventas del rango a XML (línea por línea)
// @Tags         reports
// @Security     BearerAuth
// @Produce      application/xml
// @Param        preset     query  string  false  "today | week | month | all | custom"
// @Param        from       query  string  false  "YYYY-MM-DD"
// @Param        to         query  string  false  "YYYY-MM-DD inclusivo"
// @Param        branch_id  query  string  false  "vacío = todas las sucursales"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales/export.xml [get]
func (h *ReportHandler) ExportXML(c *fiber.Ctx) error {
	var req dto.DateRangeRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	data, filename, err := h.exportUC.SalesXML(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
