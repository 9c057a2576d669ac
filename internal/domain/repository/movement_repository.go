package repository

import "github.com/cafevaldore/tienda-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el libro de
// movimientos de inventario (append-only).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// List devuelve movimientos ordenados por fecha descendente. productID
	// vacío lista todos los productos.
	List(productID string, limit int) ([]*entity.Movement, error)
}
