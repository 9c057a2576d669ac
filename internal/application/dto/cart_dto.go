package dto

import "github.com/shopspring/decimal"

// AddToCartRequest agrega una unidad del producto al carrito.
type AddToCartRequest struct {
	ProductName string          `json:"producto" validate:"required"`
	UnitPrice   decimal.Decimal `json:"precio"`
}

// ChangeQuantityRequest ajusta la cantidad de una línea (+1 / -1).
type ChangeQuantityRequest struct {
	ProductName string `json:"producto" validate:"required"`
	Delta       int    `json:"cambio" validate:"required"`
}

// CartItemResponse una línea del carrito con su subtotal.
type CartItemResponse struct {
	ProductID   string          `json:"producto_id"`
	ProductName string          `json:"producto"`
	UnitPrice   decimal.Decimal `json:"precio"`
	Quantity    int             `json:"cantidad"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse carrito completo con totales. Warning lleva avisos tipo
// "quedan solo N unidades" cuando el stock restante es bajo.
type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	Total      decimal.Decimal    `json:"total"`
	TotalItems int                `json:"total_items"`
	Warning    string             `json:"aviso,omitempty"`
}
