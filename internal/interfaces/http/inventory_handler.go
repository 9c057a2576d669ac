package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cafevaldore/tienda-api/internal/application/dto"
	"github.com/cafevaldore/tienda-api/internal/application/inventory"
	"github.com/cafevaldore/tienda-api/internal/domain"
)

// InventoryHandler maneja el panel de inventario (protegido, solo admin).
type InventoryHandler struct {
	uc  *inventory.AdminUseCase
	pdf inventory.ReportPDFGenerator
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(uc *inventory.AdminUseCase, pdf inventory.ReportPDFGenerator) *InventoryHandler {
	return &InventoryHandler{uc: uc, pdf: pdf}
}

// List godoc
// @Summary      Inventario completo
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/admin/inventario [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateStock godoc
// @Summary      Fijar stock absoluto de un SKU
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "SKU"
// @Param        body  body  dto.UpdateStockRequest  true  "stock, motivo"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/inventario/{id}/stock [put]
func (h *InventoryHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStock(c.Context(), c.Params("id"), in.Stock, in.Reason); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock actualizado"})
}

// AdjustStock godoc
// @Summary      Ajustar stock con un delta
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "SKU"
// @Param        body  body  dto.AdjustStockRequest  true  "cambio, motivo"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/inventario/{id}/ajuste [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AdjustStock(c.Context(), c.Params("id"), in.Change, in.Reason); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock ajustado"})
}

// ToggleActive godoc
// @Summary      Activar o desactivar un SKU
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "SKU"
// @Param        body  body  dto.ToggleActiveRequest  true  "activo"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/inventario/{id}/activo [put]
func (h *InventoryHandler) ToggleActive(c *fiber.Ctx) error {
	var in dto.ToggleActiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ToggleActive(c.Params("id"), in.Active); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "disponibilidad actualizada"})
}

// Movements godoc
// @Summary      Historial de movimientos
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        producto_id  query  string  false  "filtrar por SKU"
// @Param        limite       query  int     false  "máximo de filas (default 50)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/admin/inventario/movimientos [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.Movements(c.Query("producto_id"), c.QueryInt("limite"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte resumen del inventario
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryReportResponse
// @Router       /api/admin/inventario/reporte [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.Report()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar inventario a CSV
// @Tags         inventario
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/admin/inventario/exportar [get]
func (h *InventoryHandler) ExportCSV(c *fiber.Ctx) error {
	filename, data, err := h.uc.ExportCSV()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ExportPDF godoc
// @Summary      Exportar reporte de inventario a PDF
// @Tags         inventario
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {string}  binary
// @Router       /api/admin/inventario/reporte.pdf [get]
func (h *InventoryHandler) ExportPDF(c *fiber.Ctx) error {
	report, err := h.uc.Report()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	data, err := h.pdf.GenerateReportPDF(c.Context(), report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-inventario.pdf"`)
	return c.Send(data)
}

func (h *InventoryHandler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "SKU no encontrado en inventario"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
