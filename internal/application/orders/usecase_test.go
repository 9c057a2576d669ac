package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafevaldore/tienda-api/internal/application/dto"
	"github.com/cafevaldore/tienda-api/internal/application/inventory"
	"github.com/cafevaldore/tienda-api/internal/application/orders"
	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/promo"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
	"github.com/cafevaldore/tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders []*entity.Order
}

func (f *fakeOrderRepo) Create(o *entity.Order) error {
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) List(status string, _ *time.Time) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(id, status string) error {
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeCartRepo struct {
	carts map[string]*entity.Cart
}

func (f *fakeCartRepo) Get(_ context.Context, userID string) (*entity.Cart, error) {
	return f.carts[userID], nil
}

func (f *fakeCartRepo) Save(_ context.Context, c *entity.Cart) error {
	f.carts[c.UserID] = c
	return nil
}

func (f *fakeCartRepo) Delete(_ context.Context, userID string) error {
	delete(f.carts, userID)
	return nil
}

type fakeProductRepo struct{ products []*entity.Product }

func (f *fakeProductRepo) Create(*entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) List() ([]*entity.Product, error) { return f.products, nil }
func (f *fakeProductRepo) Update(*entity.Product) error     { return nil }
func (f *fakeProductRepo) Delete(string) error              { return nil }

type fakeInventoryRepo struct{ records map[string]*entity.InventoryRecord }

func (f *fakeInventoryRepo) Get(id string) (*entity.InventoryRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return rec, nil
}
func (f *fakeInventoryRepo) List() ([]*entity.InventoryRecord, error) { return nil, nil }
func (f *fakeInventoryRepo) Upsert(*entity.InventoryRecord) error     { return nil }
func (f *fakeInventoryRepo) SetStock(string, int, string) error       { return nil }
func (f *fakeInventoryRepo) DecrementIfAvailable(id string, qty int, reason string) (bool, error) {
	rec, ok := f.records[id]
	if !ok || rec.Stock < qty {
		return false, nil
	}
	rec.Stock -= qty
	rec.LastReason = reason
	return true, nil
}
func (f *fakeInventoryRepo) SetActive(string, bool) error { return nil }

type fakeMovementRepo struct{ movements []*entity.Movement }

func (f *fakeMovementRepo) Create(m *entity.Movement) error {
	f.movements = append(f.movements, m)
	return nil
}
func (f *fakeMovementRepo) List(string, int) ([]*entity.Movement, error) {
	return f.movements, nil
}

type fakeDeductionRepo struct{ claimed map[string]bool }

func (f *fakeDeductionRepo) TryClaim(orderID string) (bool, error) {
	if f.claimed[orderID] {
		return false, nil
	}
	f.claimed[orderID] = true
	return true, nil
}
func (f *fakeDeductionRepo) Exists(orderID string) (bool, error) { return f.claimed[orderID], nil }

type fakeTxRunner struct {
	inv *fakeInventoryRepo
	mov *fakeMovementRepo
	ded *fakeDeductionRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.InventoryRepository,
	repository.MovementRepository,
	repository.DeductionRepository,
) error) error {
	return fn(f.inv, f.mov, f.ded)
}

type fakePublisher struct{ published []*entity.Order }

func (f *fakePublisher) PublishOrderCreated(_ context.Context, o *entity.Order) error {
	f.published = append(f.published, o)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de prueba
// ──────────────────────────────────────────────────────────────────────────────

type orderEnv struct {
	uc        *orders.UseCase
	orderRepo *fakeOrderRepo
	cartRepo  *fakeCartRepo
	inv       *fakeInventoryRepo
	mov       *fakeMovementRepo
	publisher *fakePublisher
}

func newOrderEnv(stocks map[string]int) *orderEnv {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	products := &fakeProductRepo{products: []*entity.Product{
		{ID: promo.SKUCafeCaturra, Name: "Café Caturra", Price: decimal.NewFromInt(25000)},
		{ID: promo.SKUCafeBourbon, Name: "Café Bourbon", Price: decimal.NewFromInt(28000)},
	}}
	inv := &fakeInventoryRepo{records: make(map[string]*entity.InventoryRecord)}
	for sku, stock := range stocks {
		inv.records[sku] = &entity.InventoryRecord{ProductID: sku, Stock: stock, Active: true}
	}
	mov := &fakeMovementRepo{}
	runner := &fakeTxRunner{inv: inv, mov: mov, ded: &fakeDeductionRepo{claimed: make(map[string]bool)}}
	deduction := inventory.NewDeductionUseCase(runner, products, inv, log)

	orderRepo := &fakeOrderRepo{}
	cartRepo := &fakeCartRepo{carts: make(map[string]*entity.Cart)}
	publisher := &fakePublisher{}

	return &orderEnv{
		uc:        orders.NewUseCase(orderRepo, cartRepo, deduction, publisher, log),
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		inv:       inv,
		mov:       mov,
		publisher: publisher,
	}
}

func (e *orderEnv) fillCart(userID string, items ...entity.CartItem) {
	e.cartRepo.carts[userID] = &entity.Cart{UserID: userID, Items: items}
}

func deliveryForm() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{Customer: dto.CustomerInfoRequest{
		Name:    "Ana María",
		Phone:   "3001234567",
		Address: "Calle 10 # 5-23",
		City:    "Medellín",
	}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Flujo completo: el carrito se confirma como pedido, el stock se descuenta,
// el evento se publica y el carrito queda vacío.
func TestCreate_ConfirmaCarritoComoPedido(t *testing.T) {
	env := newOrderEnv(map[string]int{promo.SKUCafeBourbon: 10})
	env.fillCart("u-1", entity.CartItem{
		ProductName: "Café Bourbon",
		UnitPrice:   decimal.NewFromInt(28000),
		Quantity:    2,
	})

	resp, err := env.uc.Create(context.Background(), "u-1", "ana@test.com", deliveryForm())
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, resp.Order.Status)
	assert.Equal(t, "ana@test.com", resp.Order.Email)
	assert.True(t, resp.Order.Total.Equal(decimal.NewFromInt(56000)))
	require.Len(t, resp.SoldItems, 1)
	assert.Equal(t, 2, resp.SoldItems[0].Quantity)

	assert.Equal(t, 8, env.inv.records[promo.SKUCafeBourbon].Stock)
	assert.Len(t, env.orderRepo.orders, 1)
	assert.Len(t, env.publisher.published, 1, "el evento de pedido creado se publica")
	assert.Empty(t, env.cartRepo.carts, "el carrito se vacía tras confirmar")
}

func TestCreate_FormularioIncompleto(t *testing.T) {
	env := newOrderEnv(nil)

	in := deliveryForm()
	in.Customer.Phone = ""
	_, err := env.uc.Create(context.Background(), "u-1", "ana@test.com", in)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "por favor completa todos los campos obligatorios")
	assert.Empty(t, env.orderRepo.orders)
}

func TestCreate_CarritoVacio(t *testing.T) {
	env := newOrderEnv(nil)

	_, err := env.uc.Create(context.Background(), "u-1", "ana@test.com", deliveryForm())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

// La re-validación de stock aborta el pedido antes de persistirlo.
func TestCreate_StockInsuficienteAbortaElPedido(t *testing.T) {
	env := newOrderEnv(map[string]int{promo.SKUCafeBourbon: 1})
	env.fillCart("u-1", entity.CartItem{
		ProductName: "Café Bourbon",
		UnitPrice:   decimal.NewFromInt(28000),
		Quantity:    3,
	})

	_, err := env.uc.Create(context.Background(), "u-1", "ana@test.com", deliveryForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, env.orderRepo.orders, "el pedido no se persiste")
	assert.Equal(t, 1, env.inv.records[promo.SKUCafeBourbon].Stock, "el stock no cambia")
	assert.NotEmpty(t, env.cartRepo.carts, "el carrito se conserva para corregir")
}

// ──────────────────────────────────────────────────────────────────────────────
// List / ChangeStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltroDeEstado(t *testing.T) {
	env := newOrderEnv(nil)
	env.orderRepo.orders = []*entity.Order{
		{ID: "a", Status: entity.OrderStatusPending},
		{ID: "b", Status: entity.OrderStatusCompleted},
	}

	all, err := env.uc.List("todos", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2, `"todos" equivale a sin filtro`)

	pending, err := env.uc.List(entity.OrderStatusPending, nil)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "a", pending[0].ID)

	_, err = env.uc.List("enviado", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado desconocido")
}

func TestChangeStatus(t *testing.T) {
	env := newOrderEnv(nil)
	env.orderRepo.orders = []*entity.Order{{ID: "a", Status: entity.OrderStatusPending}}

	require.NoError(t, env.uc.ChangeStatus("a", entity.OrderStatusInProgress))
	assert.Equal(t, entity.OrderStatusInProgress, env.orderRepo.orders[0].Status)

	assert.ErrorIs(t, env.uc.ChangeStatus("a", "enviado"), domain.ErrInvalidInput)
	assert.ErrorIs(t, env.uc.ChangeStatus("no-existe", entity.OrderStatusCompleted), domain.ErrNotFound)
}
