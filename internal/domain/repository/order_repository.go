package repository

import (
	"time"

	"github.com/cafevaldore/tienda-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	ListByUser(userID string) ([]*entity.Order, error)
	// List filtra por estado ("" o "todos" = sin filtro) y por día (nil = sin
	// filtro de fecha). Ordenado por fecha descendente.
	List(status string, day *time.Time) ([]*entity.Order, error)
	UpdateStatus(id, status string) error
}
