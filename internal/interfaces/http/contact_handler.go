package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cafevaldore/tienda-api/internal/application/contact"
	"github.com/cafevaldore/tienda-api/internal/application/dto"
	"github.com/cafevaldore/tienda-api/internal/domain"
)

// ContactHandler maneja el formulario de contacto público y su bandeja admin.
type ContactHandler struct {
	uc *contact.UseCase
}

// NewContactHandler construye el handler de contacto.
func NewContactHandler(uc *contact.UseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Submit godoc
// @Summary      Enviar mensaje de contacto
// @Tags         contacto
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactMessageRequest  true  "nombre, email, mensaje"
// @Success      201   {object}  dto.ContactMessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contacto [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var in dto.ContactMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Submit(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre, email y mensaje son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Bandeja de mensajes de contacto (admin)
// @Tags         contacto
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ContactMessageResponse
// @Router       /api/admin/contacto [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar mensaje de contacto como leído (admin)
// @Tags         contacto
// @Security     Bearer
// @Param        id  path  string  true  "ID del mensaje"
// @Success      200  {object}  map[string]string
// @Router       /api/admin/contacto/{id}/leido [put]
func (h *ContactHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "mensaje marcado como leído"})
}
