package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem una línea del carrito de un usuario.
type CartItem struct {
	ProductID   string          `json:"producto_id"`
	ProductName string          `json:"producto"`
	UnitPrice   decimal.Decimal `json:"precio"`
	Quantity    int             `json:"cantidad"`
}

// Subtotal precio por cantidad de la línea.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart carrito de compras por usuario, persistido en Redis como documento JSON.
type Cart struct {
	UserID    string     `json:"usuario_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"actualizado_en"`
}

// Total suma de subtotales.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// TotalItems cantidad total de unidades en el carrito.
func (c Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Find devuelve el índice de la línea del producto, o -1.
func (c Cart) Find(productName string) int {
	for i, it := range c.Items {
		if it.ProductName == productName {
			return i
		}
	}
	return -1
}
