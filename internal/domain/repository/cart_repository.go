package repository

import (
	"context"

	"github.com/cafevaldore/tienda-api/internal/domain/entity"
)

// CartRepository define el puerto para el carrito por usuario (Redis).
// Devuelve nil (sin error) cuando el usuario no tiene carrito guardado.
type CartRepository interface {
	Get(ctx context.Context, userID string) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
	Delete(ctx context.Context, userID string) error
}
