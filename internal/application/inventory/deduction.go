package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/promo"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
	"github.com/cafevaldore/tienda-api/pkg/logger"
)

// DeductionUseCase es el motor de descuento de stock: resuelve las líneas de
// un pedido confirmado a SKUs reales (expandiendo promociones), aplica los
// decrementos de forma transaccional e idempotente, y registra un movimiento
// por unidad afectada.
//
// Es la única implementación de esta lógica en el sistema; tanto la
// confirmación del pedido como el suscriptor de eventos del panel admin pasan
// por aquí, y la marca en descuentos_pedido garantiza que solo uno de los dos
// caminos aplica el descuento.
type DeductionUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	log           *logger.Logger
}

// NewDeductionUseCase construye el motor de descuento.
func NewDeductionUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	log *logger.Logger,
) *DeductionUseCase {
	return &DeductionUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		log:           log,
	}
}

// SoldItem un SKU efectivamente descontado, con la cantidad aplicada.
type SoldItem struct {
	Name     string
	Quantity int
}

// DeductionResult resultado de aplicar el descuento de un pedido. El éxito es
// parcial por diseño: las unidades con stock insuficiente o no resueltas se
// omiten con aviso y no revierten a las demás.
type DeductionResult struct {
	OrderID string
	// Applied es false si el pedido ya había sido descontado por el otro
	// camino de activación (idempotencia).
	Applied bool
	Sold    []SoldItem
	Skipped []string
}

// resolvedUnit una unidad requerida con el tag de motivo de su línea origen.
type resolvedUnit struct {
	promo.RequiredUnit
	reasonTag string // "super-promocion", "promocion" o "" para venta directa
}

// resolveItems mapea las líneas del pedido a unidades de inventario. Las
// promociones se expanden con la tabla de promo; el resto se busca en el
// catálogo por nombre. Las líneas sin resolver se devuelven aparte y nunca
// hacen fallar el lote.
func (uc *DeductionUseCase) resolveItems(items []entity.OrderItem) ([]resolvedUnit, []string) {
	catalog, err := uc.productRepo.List()
	if err != nil {
		uc.log.Error().Err(err).Msg("cargar catálogo para resolver pedido")
		catalog = nil
	}

	var units []resolvedUnit
	var unresolved []string
	for _, item := range items {
		if b := promo.DetectBundle(item.ProductName); b != nil {
			for _, u := range promo.Expand(item.ProductName, item.Quantity) {
				units = append(units, resolvedUnit{RequiredUnit: u, reasonTag: b.ReasonTag})
			}
			continue
		}
		p := promo.MatchProduct(item.ProductName, catalog)
		if p == nil {
			uc.log.Warn().Str("producto", item.ProductName).Msg("producto no identificado en inventario")
			unresolved = append(unresolved, item.ProductName)
			continue
		}
		units = append(units, resolvedUnit{
			RequiredUnit: promo.RequiredUnit{ProductID: p.ID, Name: p.Name, Quantity: item.Quantity},
		})
	}
	return units, unresolved
}

// reason arma el motivo del movimiento con el ID del pedido, igual que el
// histórico: venta-<pedido>, venta-promocion-<pedido>, venta-super-promocion-<pedido>.
func reason(tag, orderID string) string {
	if tag == "" {
		return "venta-" + orderID
	}
	return "venta-" + tag + "-" + orderID
}

// DeductFromOrder aplica el descuento de stock de un pedido. En una única
// transacción: reclama la marca de idempotencia, decrementa cada unidad con
// un UPDATE condicional con piso (el stock nunca queda negativo) y registra
// un movimiento con delta negativo por unidad aplicada.
//
// Si el pedido ya fue descontado devuelve Applied=false sin error. Las
// unidades con stock insuficiente se omiten sin abortar a sus hermanas.
func (uc *DeductionUseCase) DeductFromOrder(ctx context.Context, order *entity.Order) (*DeductionResult, error) {
	if order == nil || order.ID == "" {
		return nil, domain.ErrInvalidInput
	}

	units, unresolved := uc.resolveItems(order.Items)
	result := &DeductionResult{OrderID: order.ID, Skipped: unresolved}

	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
		dedRepo repository.DeductionRepository,
	) error {
		claimed, err := dedRepo.TryClaim(order.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return domain.ErrAlreadyDeducted
		}

		for _, u := range units {
			motive := reason(u.reasonTag, order.ID)
			ok, err := invRepo.DecrementIfAvailable(u.ProductID, u.Quantity, motive)
			if err != nil {
				return err
			}
			if !ok {
				uc.log.Warn().
					Str("producto_id", u.ProductID).
					Int("cantidad", u.Quantity).
					Str("pedido_id", order.ID).
					Msg("stock insuficiente, unidad omitida")
				result.Skipped = append(result.Skipped, u.ProductID)
				continue
			}
			mov := &entity.Movement{
				ID:          uuid.New().String(),
				ProductID:   u.ProductID,
				ProductName: u.Name,
				Quantity:    -u.Quantity,
				Reason:      motive,
				Date:        now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			result.Sold = append(result.Sold, SoldItem{Name: u.Name, Quantity: u.Quantity})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyDeducted) {
			uc.log.Debug().Str("pedido_id", order.ID).Msg("descuento ya aplicado, se omite")
			return &DeductionResult{OrderID: order.ID, Applied: false}, nil
		}
		return nil, err
	}

	result.Applied = true
	return result, nil
}

// CheckAvailability re-valida el stock de todas las unidades resueltas de un
// carrito antes de confirmar el pedido: SKU inactivo o stock menor al
// requerido abortan la confirmación con un mensaje legible para el comprador.
// Las líneas no resueltas no bloquean (se omitirán en el descuento).
func (uc *DeductionUseCase) CheckAvailability(items []entity.OrderItem) error {
	units, _ := uc.resolveItems(items)
	for _, u := range units {
		rec, err := uc.inventoryRepo.Get(u.ProductID)
		if err != nil {
			return err
		}
		if rec == nil || !rec.Active {
			return fmt.Errorf("%s ya no está disponible: %w", u.Name, domain.ErrProductInactive)
		}
		if rec.Stock < u.Quantity {
			return fmt.Errorf("stock insuficiente de %s. Solicitado: %d, Disponible: %d: %w",
				u.Name, u.Quantity, rec.Stock, domain.ErrInsufficientStock)
		}
	}
	return nil
}
