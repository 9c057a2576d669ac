package repository

import "github.com/cafevaldore/tienda-api/internal/domain/entity"

// InventoryRepository define el puerto para consultar y mutar el inventario.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	Get(productID string) (*entity.InventoryRecord, error)
	List() ([]*entity.InventoryRecord, error)
	Upsert(rec *entity.InventoryRecord) error
	// SetStock fija el stock absoluto y registra motivo y marca de tiempo.
	SetStock(productID string, stock int, reason string) error
	// DecrementIfAvailable resta quantity solo si stock >= quantity, en un
	// único UPDATE condicional (sin leer-luego-escribir). Devuelve false si
	// el stock era insuficiente o la fila no existe; el stock no cambia.
	DecrementIfAvailable(productID string, quantity int, reason string) (bool, error)
	SetActive(productID string, active bool) error
}
