package http

import (
	"github.com/gofiber/fiber/v2"
)

// MetaHandler expone la versión de la aplicación y el manifiesto de activos
// estáticos que el frontend precachea. Subir la versión en configuración
// invalida las cachés de los clientes.
type MetaHandler struct {
	version string
	assets  []string
}

// NewMetaHandler construye el handler de versión y activos.
func NewMetaHandler(version string, assets []string) *MetaHandler {
	return &MetaHandler{version: version, assets: assets}
}

// Version godoc
// @Summary      Versión y manifiesto de activos
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/version [get]
func (h *MetaHandler) Version(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": h.version,
		"assets":  h.assets,
	})
}

// Health godoc
// @Summary      Healthcheck
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/health [get]
func (h *MetaHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
