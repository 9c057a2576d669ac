package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido. La transición la decide el panel admin; no hay máquina
// de estados estricta (cualquier estado puede pasar a cualquier otro).
const (
	OrderStatusPending    = "pendiente"
	OrderStatusInProgress = "en-proceso"
	OrderStatusCompleted  = "completado"
)

// ValidOrderStatus verifica que el estado sea uno de los conocidos.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusInProgress || s == OrderStatusCompleted
}

// CustomerInfo datos de entrega capturados en el formulario de pedido.
type CustomerInfo struct {
	Name    string
	Phone   string
	Address string
	City    string
	Email   string
	Notes   string
}

// OrderItem una línea del pedido. ProductName es el nombre mostrado en la
// tienda; el motor de descuento lo resuelve a uno o más SKUs reales.
type OrderItem struct {
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// Order representa un pedido confirmado por un cliente.
type Order struct {
	ID        string
	UserID    string
	Customer  CustomerInfo
	Items     []OrderItem
	Total     decimal.Decimal
	Status    string
	CreatedAt time.Time
}
