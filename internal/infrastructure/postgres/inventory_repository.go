package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene la fila de inventario de un SKU.
func (r *InventoryRepo) Get(productID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT producto_id, stock, stock_minimo, stock_maximo, activo, ultima_actualizacion, ultimo_motivo
		FROM inventario WHERE producto_id = $1`
	var rec entity.InventoryRecord
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&rec.ProductID, &rec.Stock, &rec.StockMin, &rec.StockMax, &rec.Active,
		&rec.LastUpdated, &rec.LastReason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return &rec, nil
}

// List devuelve todo el inventario ordenado por SKU.
func (r *InventoryRepo) List() ([]*entity.InventoryRecord, error) {
	query := `
		SELECT producto_id, stock, stock_minimo, stock_maximo, activo, ultima_actualizacion, ultimo_motivo
		FROM inventario ORDER BY producto_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list inventario: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ProductID, &rec.Stock, &rec.StockMin, &rec.StockMax,
			&rec.Active, &rec.LastUpdated, &rec.LastReason); err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// Upsert inserta o actualiza la fila de inventario de un SKU.
func (r *InventoryRepo) Upsert(rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventario (producto_id, stock, stock_minimo, stock_maximo, activo, ultima_actualizacion, ultimo_motivo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (producto_id)
		DO UPDATE SET stock = EXCLUDED.stock, stock_minimo = EXCLUDED.stock_minimo,
			stock_maximo = EXCLUDED.stock_maximo, activo = EXCLUDED.activo,
			ultima_actualizacion = EXCLUDED.ultima_actualizacion, ultimo_motivo = EXCLUDED.ultimo_motivo`
	_, err := r.q.Exec(context.Background(), query,
		rec.ProductID, rec.Stock, rec.StockMin, rec.StockMax, rec.Active,
		rec.LastUpdated, rec.LastReason,
	)
	if err != nil {
		return fmt.Errorf("upsert inventario: %w", err)
	}
	return nil
}

// SetStock fija el stock absoluto y registra motivo y marca de tiempo.
func (r *InventoryRepo) SetStock(productID string, stock int, reason string) error {
	query := `
		UPDATE inventario SET stock = $2, ultimo_motivo = $3, ultima_actualizacion = now()
		WHERE producto_id = $1`
	_, err := r.q.Exec(context.Background(), query, productID, stock, reason)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return nil
}

// DecrementIfAvailable resta quantity en un único UPDATE condicional: la fila
// solo cambia si stock >= quantity, así el stock nunca queda negativo aunque
// dos pedidos compitan por las mismas unidades. Devuelve false si no alcanzó.
func (r *InventoryRepo) DecrementIfAvailable(productID string, quantity int, reason string) (bool, error) {
	query := `
		UPDATE inventario SET stock = stock - $2, ultimo_motivo = $3, ultima_actualizacion = now()
		WHERE producto_id = $1 AND stock >= $2`
	tag, err := r.q.Exec(context.Background(), query, productID, quantity, reason)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetActive activa o desactiva un SKU.
func (r *InventoryRepo) SetActive(productID string, active bool) error {
	query := `
		UPDATE inventario SET activo = $2, ultima_actualizacion = now()
		WHERE producto_id = $1`
	_, err := r.q.Exec(context.Background(), query, productID, active)
	if err != nil {
		return fmt.Errorf("set activo: %w", err)
	}
	return nil
}
