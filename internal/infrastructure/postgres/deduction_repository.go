package postgres

import (
	"context"
	"fmt"

	"github.com/cafevaldore/tienda-api/internal/domain/repository"
)

var _ repository.DeductionRepository = (*DeductionRepo)(nil)

// DeductionRepo marca de idempotencia del motor de descuento sobre PostgreSQL.
// La primary key de descuentos_pedido es el ID del pedido: el primer INSERT
// gana y los demás caminos de activación ven conflict.
type DeductionRepo struct {
	q Querier
}

// NewDeductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeductionRepository(q Querier) *DeductionRepo {
	return &DeductionRepo{q: q}
}

// TryClaim intenta registrar el pedido como descontado. Devuelve false si ya
// estaba reclamado.
func (r *DeductionRepo) TryClaim(orderID string) (bool, error) {
	query := `
		INSERT INTO descuentos_pedido (pedido_id, aplicado_en)
		VALUES ($1, now())
		ON CONFLICT (pedido_id) DO NOTHING`
	tag, err := r.q.Exec(context.Background(), query, orderID)
	if err != nil {
		return false, fmt.Errorf("claim descuento: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Exists verifica si el pedido ya fue descontado.
func (r *DeductionRepo) Exists(orderID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM descuentos_pedido WHERE pedido_id = $1)`, orderID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists descuento: %w", err)
	}
	return exists, nil
}
