package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerInfoRequest datos de entrega del formulario de pedido.
type CustomerInfoRequest struct {
	Name    string `json:"nombre" validate:"required"`
	Phone   string `json:"telefono" validate:"required"`
	Address string `json:"direccion" validate:"required"`
	City    string `json:"ciudad" validate:"required"`
	Notes   string `json:"notas"`
}

// CreateOrderRequest confirma el carrito actual como pedido.
type CreateOrderRequest struct {
	Customer CustomerInfoRequest `json:"datos_cliente"`
}

// OrderItemResponse una línea del pedido.
type OrderItemResponse struct {
	ProductName string          `json:"producto"`
	UnitPrice   decimal.Decimal `json:"precio"`
	Quantity    int             `json:"cantidad"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"usuario_id"`
	Customer  CustomerInfoRequest `json:"datos_cliente"`
	Email     string              `json:"email"`
	Items     []OrderItemResponse `json:"pedido"`
	Total     decimal.Decimal     `json:"total"`
	Status    string              `json:"estado"`
	CreatedAt time.Time           `json:"fecha"`
}

// SoldItemResponse un SKU efectivamente descontado por el motor.
type SoldItemResponse struct {
	Name     string `json:"nombre"`
	Quantity int    `json:"cantidad"`
}

// CreateOrderResponse pedido creado más el resultado del descuento de stock.
// El pedido se confirma aunque el descuento degrade (SkippedUnits).
type CreateOrderResponse struct {
	Order        OrderResponse      `json:"pedido"`
	SoldItems    []SoldItemResponse `json:"productos_vendidos"`
	SkippedUnits []string           `json:"unidades_omitidas,omitempty"`
}

// ChangeOrderStatusRequest cambia el estado de un pedido (admin).
type ChangeOrderStatusRequest struct {
	Status string `json:"estado" validate:"required,oneof=pendiente en-proceso completado"`
}
