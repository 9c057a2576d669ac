package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafevaldore/tienda-api/internal/application/cart"
	"github.com/cafevaldore/tienda-api/internal/application/dto"
	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/promo"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCartRepo struct {
	carts map[string]*entity.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*entity.Cart)}
}

func (f *fakeCartRepo) Get(_ context.Context, userID string) (*entity.Cart, error) {
	c, ok := f.carts[userID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Items = append([]entity.CartItem(nil), c.Items...)
	return &cp, nil
}

func (f *fakeCartRepo) Save(_ context.Context, c *entity.Cart) error {
	cp := *c
	cp.Items = append([]entity.CartItem(nil), c.Items...)
	f.carts[c.UserID] = &cp
	return nil
}

func (f *fakeCartRepo) Delete(_ context.Context, userID string) error {
	delete(f.carts, userID)
	return nil
}

type fakeInventoryRepo struct {
	records map[string]*entity.InventoryRecord
}

func (f *fakeInventoryRepo) Get(productID string) (*entity.InventoryRecord, error) {
	rec, ok := f.records[productID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeInventoryRepo) List() ([]*entity.InventoryRecord, error) { return nil, nil }
func (f *fakeInventoryRepo) Upsert(*entity.InventoryRecord) error     { return nil }
func (f *fakeInventoryRepo) SetStock(string, int, string) error       { return nil }
func (f *fakeInventoryRepo) DecrementIfAvailable(string, int, string) (bool, error) {
	return false, nil
}
func (f *fakeInventoryRepo) SetActive(string, bool) error { return nil }

func newCartEnv(stocks map[string]int) (*cart.UseCase, *fakeCartRepo) {
	inv := &fakeInventoryRepo{records: make(map[string]*entity.InventoryRecord)}
	for sku, stock := range stocks {
		inv.records[sku] = &entity.InventoryRecord{ProductID: sku, Stock: stock, Active: true}
	}
	repo := newFakeCartRepo()
	return cart.NewUseCase(repo, inv), repo
}

func addRequest(name string, price int64) dto.AddToCartRequest {
	return dto.AddToCartRequest{ProductName: name, UnitPrice: decimal.NewFromInt(price)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Add
// ──────────────────────────────────────────────────────────────────────────────

func TestAdd_NuevaLinea(t *testing.T) {
	uc, _ := newCartEnv(map[string]int{promo.SKUCafeBourbon: 10})

	resp, err := uc.Add(context.Background(), "u-1", addRequest("Café Bourbon", 28000))
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, promo.SKUCafeBourbon, resp.Items[0].ProductID, "el SKU se resuelve al agregar")
	assert.Equal(t, 1, resp.Items[0].Quantity)
	assert.Empty(t, resp.Warning)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(28000)))
}

func TestAdd_SumaALineaExistente(t *testing.T) {
	uc, _ := newCartEnv(map[string]int{promo.SKUCafeBourbon: 10})
	ctx := context.Background()

	_, err := uc.Add(ctx, "u-1", addRequest("Café Bourbon", 28000))
	require.NoError(t, err)
	resp, err := uc.Add(ctx, "u-1", addRequest("Café Bourbon", 28000))
	require.NoError(t, err)

	require.Len(t, resp.Items, 1, "la misma línea, no una nueva")
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, 2, resp.TotalItems)
	assert.True(t, resp.Items[0].Subtotal.Equal(decimal.NewFromInt(56000)))
}

func TestAdd_TopaAlStockYAvisa(t *testing.T) {
	uc, _ := newCartEnv(map[string]int{promo.SKUCafeCaturra: 2})
	ctx := context.Background()

	_, err := uc.Add(ctx, "u-1", addRequest("Café Caturra", 25000))
	require.NoError(t, err)
	resp, err := uc.Add(ctx, "u-1", addRequest("Café Caturra", 25000))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, "quedan solo 0 unidades", resp.Warning)

	// Un tercer intento queda topado en el stock, no falla.
	resp, err = uc.Add(ctx, "u-1", addRequest("Café Caturra", 25000))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Items[0].Quantity, "la cantidad no supera el stock")
}

func TestAdd_AvisoStockBajo(t *testing.T) {
	uc, _ := newCartEnv(map[string]int{promo.SKUCafeBourbon: 4})

	resp, err := uc.Add(context.Background(), "u-1", addRequest("Café Bourbon", 28000))
	require.NoError(t, err)
	assert.Equal(t, "quedan solo 3 unidades", resp.Warning)
}

func TestAdd_Agotado(t *testing.T) {
	uc, _ := newCartEnv(map[string]int{promo.SKUCafeBourbon: 0})

	_, err := uc.Add(context.Background(), "u-1", addRequest("Café Bourbon", 28000))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Café Bourbon está agotado")
}

func TestAdd_ProductoInactivo(t *testing.T) {
	// SKU conocido pero sin fila de inventario activa.
	uc, _ := newCartEnv(nil)
	_, err := uc.Add(context.Background(), "u-1", addRequest("Café Bourbon", 28000))
	assert.ErrorIs(t, err, domain.ErrProductInactive)
}

func TestAdd_ProductoNoIdentificadoNoSeTopa(t *testing.T) {
	uc, _ := newCartEnv(nil)

	resp, err := uc.Add(context.Background(), "u-1", addRequest("Taza de cerámica", 15000))
	require.NoError(t, err, "lo que no se identifica se valida al confirmar, no aquí")
	require.Len(t, resp.Items, 1)
	assert.Empty(t, resp.Items[0].ProductID)
}

func TestAdd_NombreVacio(t *testing.T) {
	uc, _ := newCartEnv(nil)
	_, err := uc.Add(context.Background(), "u-1", dto.AddToCartRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangeQuantity / Remove / Clear
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeQuantity_BajarACeroEliminaLinea(t *testing.T) {
	uc, _ := newCartEnv(map[string]int{promo.SKUCafeBourbon: 10})
	ctx := context.Background()

	_, err := uc.Add(ctx, "u-1", addRequest("Café Bourbon", 28000))
	require.NoError(t, err)

	resp, err := uc.ChangeQuantity(ctx, "u-1", dto.ChangeQuantityRequest{
		ProductName: "Café Bourbon",
		Delta:       -1,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.TotalItems)
}

func TestChangeQuantity_SubirRespetaElStock(t *testing.T) {
	uc, _ := newCartEnv(map[string]int{promo.SKUCafeCaturra: 1})
	ctx := context.Background()

	_, err := uc.Add(ctx, "u-1", addRequest("Café Caturra", 25000))
	require.NoError(t, err)

	resp, err := uc.ChangeQuantity(ctx, "u-1", dto.ChangeQuantityRequest{
		ProductName: "Café Caturra",
		Delta:       1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Items[0].Quantity, "sube pero queda topado al stock")
	assert.Equal(t, "quedan solo 0 unidades", resp.Warning)
}

func TestChangeQuantity_LineaInexistente(t *testing.T) {
	uc, _ := newCartEnv(nil)
	_, err := uc.ChangeQuantity(context.Background(), "u-1", dto.ChangeQuantityRequest{
		ProductName: "Café Bourbon",
		Delta:       1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemove(t *testing.T) {
	uc, _ := newCartEnv(map[string]int{promo.SKUCafeBourbon: 10, promo.SKUCafeCaturra: 10})
	ctx := context.Background()

	_, err := uc.Add(ctx, "u-1", addRequest("Café Bourbon", 28000))
	require.NoError(t, err)
	_, err = uc.Add(ctx, "u-1", addRequest("Café Caturra", 25000))
	require.NoError(t, err)

	resp, err := uc.Remove(ctx, "u-1", "Café Bourbon")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Café Caturra", resp.Items[0].ProductName)

	_, err = uc.Remove(ctx, "u-1", "Café Bourbon")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClear(t *testing.T) {
	uc, repo := newCartEnv(map[string]int{promo.SKUCafeBourbon: 10})
	ctx := context.Background()

	_, err := uc.Add(ctx, "u-1", addRequest("Café Bourbon", 28000))
	require.NoError(t, err)

	require.NoError(t, uc.Clear(ctx, "u-1"))
	assert.Empty(t, repo.carts)

	resp, err := uc.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items, "tras vaciar, Get devuelve carrito vacío")
}
