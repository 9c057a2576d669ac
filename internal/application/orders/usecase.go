package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cafevaldore/tienda-api/internal/application/dto"
	"github.com/cafevaldore/tienda-api/internal/application/inventory"
	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
	"github.com/cafevaldore/tienda-api/pkg/logger"
)

// EventPublisher publica eventos de pedidos para los suscriptores en tiempo
// real (panel admin). La publicación es best-effort: un fallo no revierte el
// pedido ya confirmado.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *entity.Order) error
}

// UseCase casos de uso de pedidos: confirmación desde el carrito, listado del
// cliente y gestión de estados del panel admin.
type UseCase struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	deduction *inventory.DeductionUseCase
	publisher EventPublisher
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de pedidos.
func NewUseCase(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	deduction *inventory.DeductionUseCase,
	publisher EventPublisher,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		deduction: deduction,
		publisher: publisher,
		log:       log,
	}
}

// Create confirma el carrito del usuario como pedido:
//
//  1. valida los campos obligatorios del formulario de entrega,
//  2. re-valida stock y disponibilidad de todas las unidades resueltas
//     (aborta el pedido si alguna falla),
//  3. persiste el pedido y aplica el descuento de stock; si el descuento
//     degrada, el pedido ya confirmado se mantiene y solo se advierte,
//  4. publica el evento y vacía el carrito.
func (uc *UseCase) Create(ctx context.Context, userID, email string, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	c := in.Customer
	if c.Name == "" || c.Phone == "" || c.Address == "" || c.City == "" {
		return nil, fmt.Errorf("por favor completa todos los campos obligatorios: %w", domain.ErrInvalidInput)
	}

	cart, err := uc.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items := make([]entity.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, entity.OrderItem{
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}

	if err := uc.deduction.CheckAvailability(items); err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:     uuid.New().String(),
		UserID: userID,
		Customer: entity.CustomerInfo{
			Name:    c.Name,
			Phone:   c.Phone,
			Address: c.Address,
			City:    c.City,
			Email:   email,
			Notes:   c.Notes,
		},
		Items:     items,
		Total:     cart.Total(),
		Status:    entity.OrderStatusPending,
		CreatedAt: time.Now(),
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}

	out := &dto.CreateOrderResponse{Order: toOrderResponse(order)}

	// El pedido ya está confirmado: un fallo aquí degrada con advertencia,
	// nunca deshace el pedido.
	result, err := uc.deduction.DeductFromOrder(ctx, order)
	if err != nil {
		uc.log.Warn().Err(err).Str("pedido_id", order.ID).Msg("el stock no se actualizó")
	} else if result.Applied {
		for _, s := range result.Sold {
			out.SoldItems = append(out.SoldItems, dto.SoldItemResponse{Name: s.Name, Quantity: s.Quantity})
		}
		out.SkippedUnits = result.Skipped
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderCreated(ctx, order); err != nil {
			uc.log.Warn().Err(err).Str("pedido_id", order.ID).Msg("publicar evento de pedido")
		}
	}

	if err := uc.cartRepo.Delete(ctx, userID); err != nil {
		uc.log.Warn().Err(err).Str("usuario_id", userID).Msg("vaciar carrito tras pedido")
	}

	return out, nil
}

// ListByUser devuelve los pedidos del cliente, más recientes primero.
func (uc *UseCase) ListByUser(userID string) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// List devuelve pedidos para el panel admin, con filtro opcional por estado
// y por día.
func (uc *UseCase) List(status string, day *time.Time) ([]dto.OrderResponse, error) {
	if status == "todos" {
		status = ""
	}
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	orders, err := uc.orderRepo.List(status, day)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// ChangeStatus cambia el estado de un pedido (solo admin).
func (uc *UseCase) ChangeStatus(orderID, status string) error {
	if !entity.ValidOrderStatus(status) {
		return domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return uc.orderRepo.UpdateStatus(orderID, status)
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	return dto.OrderResponse{
		ID:     o.ID,
		UserID: o.UserID,
		Customer: dto.CustomerInfoRequest{
			Name:    o.Customer.Name,
			Phone:   o.Customer.Phone,
			Address: o.Customer.Address,
			City:    o.Customer.City,
			Notes:   o.Customer.Notes,
		},
		Email:     o.Customer.Email,
		Items:     items,
		Total:     o.Total,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}

func toOrderResponses(orders []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}
