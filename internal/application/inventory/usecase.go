package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cafevaldore/tienda-api/internal/application/dto"
	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
)

// AdminUseCase operaciones del panel de inventario: listado, ajustes de stock,
// activación y consulta del libro de movimientos.
type AdminUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	movementRepo  repository.MovementRepository
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.MovementRepository,
) *AdminUseCase {
	return &AdminUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		movementRepo:  movementRepo,
	}
}

// List devuelve el inventario completo con los datos de catálogo de cada SKU.
func (uc *AdminUseCase) List() ([]dto.InventoryItemResponse, error) {
	records, err := uc.inventoryRepo.List()
	if err != nil {
		return nil, err
	}
	catalog, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	items := make([]dto.InventoryItemResponse, 0, len(records))
	for _, rec := range records {
		item := dto.InventoryItemResponse{
			ProductID:   rec.ProductID,
			Name:        rec.ProductID,
			Stock:       rec.Stock,
			StockMin:    rec.StockMin,
			StockMax:    rec.StockMax,
			Active:      rec.Active,
			LastUpdated: rec.LastUpdated,
			LastReason:  rec.LastReason,
		}
		if p, ok := byID[rec.ProductID]; ok {
			item.Name = p.Name
			item.Price = p.Price
		}
		items = append(items, item)
	}
	return items, nil
}

// UpdateStock fija el stock absoluto de un SKU y registra el movimiento con el
// delta aplicado, en una sola transacción.
func (uc *AdminUseCase) UpdateStock(ctx context.Context, productID string, newStock int, motive string) error {
	if newStock < 0 {
		return domain.ErrInvalidInput
	}
	if motive == "" {
		motive = "manual"
	}
	return uc.setStockTx(ctx, productID, func(current int) int { return newStock }, motive)
}

// AdjustStock aplica un delta al stock, con piso en cero (igual que el ajuste
// manual del panel histórico).
func (uc *AdminUseCase) AdjustStock(ctx context.Context, productID string, change int, motive string) error {
	if motive == "" {
		motive = "ajuste-manual"
	}
	return uc.setStockTx(ctx, productID, func(current int) int {
		next := current + change
		if next < 0 {
			return 0
		}
		return next
	}, motive)
}

// setStockTx lee el stock dentro de la transacción, aplica la función de
// cambio y registra el movimiento con el delta resultante.
func (uc *AdminUseCase) setStockTx(ctx context.Context, productID string, apply func(int) int, motive string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	name := productID
	if product != nil {
		name = product.Name
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
		_ repository.DeductionRepository,
	) error {
		rec, err := invRepo.Get(productID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		newStock := apply(rec.Stock)
		delta := newStock - rec.Stock
		if err := invRepo.SetStock(productID, newStock, motive); err != nil {
			return err
		}
		if delta == 0 {
			return nil
		}
		return movRepo.Create(&entity.Movement{
			ID:          uuid.New().String(),
			ProductID:   productID,
			ProductName: name,
			Quantity:    delta,
			Reason:      motive,
			Date:        now,
		})
	})
}

// ToggleActive activa o desactiva un SKU de la tienda.
func (uc *AdminUseCase) ToggleActive(productID string, active bool) error {
	rec, err := uc.inventoryRepo.Get(productID)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	return uc.inventoryRepo.SetActive(productID, active)
}

// Movements devuelve el historial de movimientos, opcionalmente por producto.
func (uc *AdminUseCase) Movements(productID string, limit int) ([]dto.MovementResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	movements, err := uc.movementRepo.List(productID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			ProductName: m.ProductName,
			Quantity:    m.Quantity,
			Reason:      m.Reason,
			Date:        m.Date,
		})
	}
	return out, nil
}
