package entity

import "time"

// OrderDeduction es la marca de idempotencia del motor de descuento: existe a
// lo más una fila por pedido (descuentos_pedido, PK = OrderID). Sustituye a la
// heurística de "pedido con menos de 5 segundos" del sistema anterior.
type OrderDeduction struct {
	OrderID   string
	AppliedAt time.Time
}
