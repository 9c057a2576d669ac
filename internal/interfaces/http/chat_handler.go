package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cafevaldore/tienda-api/internal/application/chat"
	"github.com/cafevaldore/tienda-api/internal/application/dto"
	"github.com/cafevaldore/tienda-api/internal/domain"
)

// ChatHandler maneja el chat cliente-tienda.
type ChatHandler struct {
	uc *chat.UseCase
}

// NewChatHandler construye el handler de chat.
func NewChatHandler(uc *chat.UseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Send godoc
// @Summary      Enviar mensaje (cliente)
// @Description  Crea la conversación del cliente si es su primer mensaje.
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendMessageRequest  true  "texto"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/chat/mensajes [post]
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var in dto.SendMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SendFromCustomer(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el mensaje no puede estar vacío"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Messages godoc
// @Summary      Mis mensajes (cliente)
// @Description  Devuelve el hilo completo y marca como leídas las respuestas del admin.
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MessageResponse
// @Router       /api/chat/mensajes [get]
func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	out, err := h.uc.CustomerMessages(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Unread godoc
// @Summary      Mensajes sin leer (cliente)
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/chat/sin-leer [get]
func (h *ChatHandler) Unread(c *fiber.Ctx) error {
	n, err := h.uc.UnreadCount(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"sin_leer": n})
}

// Conversations godoc
// @Summary      Conversaciones (admin)
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ConversationResponse
// @Router       /api/admin/chat/conversaciones [get]
func (h *ChatHandler) Conversations(c *fiber.Ctx) error {
	out, err := h.uc.Conversations()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ConversationMessages godoc
// @Summary      Mensajes de una conversación (admin)
// @Description  Devuelve el hilo y marca como leídos los mensajes del cliente.
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la conversación"
// @Success      200  {array}   dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/chat/conversaciones/{id}/mensajes [get]
func (h *ChatHandler) ConversationMessages(c *fiber.Ctx) error {
	out, err := h.uc.ConversationMessages(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "conversación no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Reply godoc
// @Summary      Responder una conversación (admin)
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la conversación"
// @Param        body  body  dto.SendMessageRequest  true  "texto"
// @Success      201   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/chat/conversaciones/{id}/mensajes [post]
func (h *ChatHandler) Reply(c *fiber.Ctx) error {
	var in dto.SendMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SendFromAdmin(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "conversación no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el mensaje no puede estar vacío"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
