package entity

import "time"

// Movement es una entrada del libro de movimientos de inventario
// (movimientos_inventario, append-only). Quantity es el delta aplicado:
// negativo para ventas/salidas, positivo para entradas y ajustes al alza.
type Movement struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    int
	Reason      string
	Date        time.Time
}
