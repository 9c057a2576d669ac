package entity

import "time"

// InventoryRecord representa el estado de stock de un producto (tabla inventario,
// una fila por SKU). Stock nunca es negativo: las salidas se aplican con un
// decremento condicional con piso en la base de datos.
type InventoryRecord struct {
	ProductID   string
	Stock       int
	StockMin    int
	StockMax    int
	Active      bool
	LastUpdated time.Time
	LastReason  string
}

// LowStock indica si el producto está por debajo del mínimo sin estar agotado.
func (r InventoryRecord) LowStock() bool {
	return r.Stock > 0 && r.Stock <= r.StockMin
}

// OutOfStock indica si el producto está agotado.
func (r InventoryRecord) OutOfStock() bool {
	return r.Stock == 0
}
