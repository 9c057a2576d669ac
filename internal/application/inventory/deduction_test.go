package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafevaldore/tienda-api/internal/application/inventory"
	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/promo"
)

// testEnv arma el motor de descuento con el catálogo de la tienda y los
// stocks indicados por SKU.
type testEnv struct {
	uc  *inventory.DeductionUseCase
	inv *fakeInventoryRepo
	mov *fakeMovementRepo
	ded *fakeDeductionRepo
}

func newTestEnv(stocks map[string]int) *testEnv {
	products := &fakeProductRepo{products: []*entity.Product{
		{ID: promo.SKUCafeCaturra, Name: "Café Caturra", Price: decimal.NewFromInt(25000)},
		{ID: promo.SKUCafeBourbon, Name: "Café Bourbon", Price: decimal.NewFromInt(28000)},
		{ID: promo.SKUPromoBC, Name: "Promoción Bourbon + Caturra", Price: decimal.NewFromInt(48000)},
		{ID: promo.SKUSuperPromo, Name: "Súper Promoción", Price: decimal.NewFromInt(95000)},
	}}
	inv := newFakeInventoryRepo()
	for sku, stock := range stocks {
		inv.records[sku] = &entity.InventoryRecord{
			ProductID: sku,
			Stock:     stock,
			StockMin:  10,
			StockMax:  500,
			Active:    true,
		}
	}
	mov := &fakeMovementRepo{}
	ded := newFakeDeductionRepo()
	runner := &fakeTxRunner{inv: inv, mov: mov, ded: ded}

	return &testEnv{
		uc:  inventory.NewDeductionUseCase(runner, products, inv, testLogger()),
		inv: inv,
		mov: mov,
		ded: ded,
	}
}

func (e *testEnv) stock(t *testing.T, sku string) int {
	t.Helper()
	rec, err := e.inv.Get(sku)
	require.NoError(t, err)
	require.NotNil(t, rec, "debe existir inventario para %s", sku)
	return rec.Stock
}

func order(id string, items ...entity.OrderItem) *entity.Order {
	return &entity.Order{ID: id, UserID: "u-1", Items: items, Status: entity.OrderStatusPending}
}

// Venta directa: el nombre mostrado se resuelve al SKU del catálogo y se
// descuenta la cantidad completa con un único movimiento negativo.
func TestDeductFromOrder_VentaDirecta(t *testing.T) {
	env := newTestEnv(map[string]int{promo.SKUCafeBourbon: 10})

	res, err := env.uc.DeductFromOrder(context.Background(), order("ped-1", entity.OrderItem{
		ProductName: "Café Bourbon",
		Quantity:    3,
	}))
	require.NoError(t, err)

	assert.True(t, res.Applied)
	assert.Empty(t, res.Skipped)
	require.Len(t, res.Sold, 1)
	assert.Equal(t, "Café Bourbon", res.Sold[0].Name)
	assert.Equal(t, 3, res.Sold[0].Quantity)

	assert.Equal(t, 7, env.stock(t, promo.SKUCafeBourbon))

	require.Len(t, env.mov.movements, 1)
	m := env.mov.movements[0]
	assert.Equal(t, promo.SKUCafeBourbon, m.ProductID)
	assert.Equal(t, -3, m.Quantity, "el movimiento de venta lleva delta negativo")
	assert.Equal(t, "venta-ped-1", m.Reason)
}

// La comparación de nombres ignora mayúsculas y tildes: "cafe bourbon"
// resuelve al mismo SKU que "Café Bourbon".
func TestDeductFromOrder_NombreSinTildes(t *testing.T) {
	env := newTestEnv(map[string]int{promo.SKUCafeBourbon: 5})

	res, err := env.uc.DeductFromOrder(context.Background(), order("ped-2", entity.OrderItem{
		ProductName: "cafe bourbon",
		Quantity:    1,
	}))
	require.NoError(t, err)

	assert.True(t, res.Applied)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, 4, env.stock(t, promo.SKUCafeBourbon))
}

// La Súper Promoción expande a su propio SKU más dos unidades de cada café
// por unidad vendida, y todos los movimientos llevan el motivo del bundle.
func TestDeductFromOrder_SuperPromocion(t *testing.T) {
	env := newTestEnv(map[string]int{
		promo.SKUSuperPromo:  4,
		promo.SKUCafeCaturra: 5,
		promo.SKUCafeBourbon: 5,
	})

	res, err := env.uc.DeductFromOrder(context.Background(), order("ped-3", entity.OrderItem{
		ProductName: "Súper Promoción",
		Quantity:    1,
	}))
	require.NoError(t, err)

	assert.True(t, res.Applied)
	assert.Empty(t, res.Skipped)
	assert.Len(t, res.Sold, 3)

	assert.Equal(t, 3, env.stock(t, promo.SKUSuperPromo))
	assert.Equal(t, 3, env.stock(t, promo.SKUCafeCaturra))
	assert.Equal(t, 3, env.stock(t, promo.SKUCafeBourbon))

	require.Len(t, env.mov.movements, 3)
	for _, m := range env.mov.movements {
		assert.Equal(t, "venta-super-promocion-ped-3", m.Reason)
		assert.Negative(t, m.Quantity)
	}
}

// La promoción sencilla consume una unidad de cada componente.
func TestDeductFromOrder_PromocionBourbonCaturra(t *testing.T) {
	env := newTestEnv(map[string]int{
		promo.SKUPromoBC:     2,
		promo.SKUCafeCaturra: 8,
		promo.SKUCafeBourbon: 8,
	})

	res, err := env.uc.DeductFromOrder(context.Background(), order("ped-4", entity.OrderItem{
		ProductName: "Promoción Bourbon + Caturra",
		Quantity:    2,
	}))
	require.NoError(t, err)
	assert.True(t, res.Applied)

	assert.Equal(t, 0, env.stock(t, promo.SKUPromoBC))
	assert.Equal(t, 6, env.stock(t, promo.SKUCafeCaturra))
	assert.Equal(t, 6, env.stock(t, promo.SKUCafeBourbon))

	require.Len(t, env.mov.movements, 3)
	assert.Equal(t, "venta-promocion-ped-4", env.mov.movements[0].Reason)
}

// Stock insuficiente en una unidad: esa unidad se omite con aviso, el stock
// no cambia y el resto del pedido sí se aplica.
func TestDeductFromOrder_StockInsuficiente_OmiteUnidad(t *testing.T) {
	env := newTestEnv(map[string]int{
		promo.SKUCafeBourbon: 2,
		promo.SKUCafeCaturra: 10,
	})

	res, err := env.uc.DeductFromOrder(context.Background(), order("ped-5",
		entity.OrderItem{ProductName: "Café Bourbon", Quantity: 5},
		entity.OrderItem{ProductName: "Café Caturra", Quantity: 4},
	))
	require.NoError(t, err)

	assert.True(t, res.Applied)
	assert.Contains(t, res.Skipped, promo.SKUCafeBourbon)
	require.Len(t, res.Sold, 1)
	assert.Equal(t, "Café Caturra", res.Sold[0].Name)

	assert.Equal(t, 2, env.stock(t, promo.SKUCafeBourbon), "el stock no cambia si no alcanza")
	assert.Equal(t, 6, env.stock(t, promo.SKUCafeCaturra))
	assert.Len(t, env.mov.movements, 1, "solo la unidad aplicada genera movimiento")
}

// Idempotencia: el segundo descuento del mismo pedido no aplica nada y no
// devuelve error (Applied=false).
func TestDeductFromOrder_Idempotente(t *testing.T) {
	env := newTestEnv(map[string]int{promo.SKUCafeBourbon: 10})
	o := order("ped-6", entity.OrderItem{ProductName: "Café Bourbon", Quantity: 3})

	first, err := env.uc.DeductFromOrder(context.Background(), o)
	require.NoError(t, err)
	require.True(t, first.Applied)

	second, err := env.uc.DeductFromOrder(context.Background(), o)
	require.NoError(t, err)
	assert.False(t, second.Applied, "el segundo camino de activación no debe descontar")
	assert.Empty(t, second.Sold)

	assert.Equal(t, 7, env.stock(t, promo.SKUCafeBourbon))
	assert.Len(t, env.mov.movements, 1)
}

// Línea con nombre no identificable: se reporta como omitida y no bloquea.
func TestDeductFromOrder_ProductoNoIdentificado(t *testing.T) {
	env := newTestEnv(map[string]int{promo.SKUCafeBourbon: 10})

	res, err := env.uc.DeductFromOrder(context.Background(), order("ped-7",
		entity.OrderItem{ProductName: "Taza de cerámica", Quantity: 1},
		entity.OrderItem{ProductName: "Café Bourbon", Quantity: 1},
	))
	require.NoError(t, err)

	assert.True(t, res.Applied)
	assert.Contains(t, res.Skipped, "Taza de cerámica")
	require.Len(t, res.Sold, 1)
	assert.Equal(t, 9, env.stock(t, promo.SKUCafeBourbon))
}

func TestDeductFromOrder_PedidoInvalido(t *testing.T) {
	env := newTestEnv(nil)

	_, err := env.uc.DeductFromOrder(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.uc.DeductFromOrder(context.Background(), &entity.Order{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckAvailability
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckAvailability_StockSuficiente(t *testing.T) {
	env := newTestEnv(map[string]int{promo.SKUCafeCaturra: 5})

	err := env.uc.CheckAvailability([]entity.OrderItem{
		{ProductName: "Café Caturra", Quantity: 5},
	})
	assert.NoError(t, err)
}

func TestCheckAvailability_StockInsuficiente(t *testing.T) {
	env := newTestEnv(map[string]int{promo.SKUCafeCaturra: 2})

	err := env.uc.CheckAvailability([]entity.OrderItem{
		{ProductName: "Café Caturra", Quantity: 3},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "stock insuficiente de Café Caturra. Solicitado: 3, Disponible: 2")
}

func TestCheckAvailability_ProductoInactivo(t *testing.T) {
	env := newTestEnv(map[string]int{promo.SKUCafeBourbon: 10})
	require.NoError(t, env.inv.SetActive(promo.SKUCafeBourbon, false))

	err := env.uc.CheckAvailability([]entity.OrderItem{
		{ProductName: "Café Bourbon", Quantity: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductInactive)
	assert.Contains(t, err.Error(), "Café Bourbon ya no está disponible")
}

// La promoción valida el stock de todos sus componentes expandidos.
func TestCheckAvailability_PromocionSinComponentes(t *testing.T) {
	env := newTestEnv(map[string]int{
		promo.SKUSuperPromo:  3,
		promo.SKUCafeCaturra: 1, // requiere 2 por unidad
		promo.SKUCafeBourbon: 5,
	})

	err := env.uc.CheckAvailability([]entity.OrderItem{
		{ProductName: "Súper Promoción", Quantity: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// Las líneas no resueltas no bloquean la confirmación.
func TestCheckAvailability_NoResueltaNoBloquea(t *testing.T) {
	env := newTestEnv(nil)

	err := env.uc.CheckAvailability([]entity.OrderItem{
		{ProductName: "Producto misterioso", Quantity: 1},
	})
	assert.NoError(t, err)
}
