package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/cafevaldore/tienda-api/internal/application/dto"
	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/promo"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
)

// UseCase casos de uso del carrito de compras. El carrito vive en Redis por
// usuario; cada mutación re-valida stock y disponibilidad contra el inventario
// para que el comprador nunca agregue más unidades de las que existen.
type UseCase struct {
	cartRepo      repository.CartRepository
	inventoryRepo repository.InventoryRepository
}

// NewUseCase construye el caso de uso del carrito.
func NewUseCase(cartRepo repository.CartRepository, inventoryRepo repository.InventoryRepository) *UseCase {
	return &UseCase{cartRepo: cartRepo, inventoryRepo: inventoryRepo}
}

// Get devuelve el carrito del usuario, vacío si aún no existe.
func (uc *UseCase) Get(ctx context.Context, userID string) (*dto.CartResponse, error) {
	c, err := uc.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &entity.Cart{UserID: userID}
	}
	return toCartResponse(c, ""), nil
}

// Add agrega una unidad del producto al carrito (o suma una a la línea
// existente). La cantidad queda topada al stock disponible del SKU resuelto y,
// si tras agregar quedan 3 unidades o menos, la respuesta lleva el aviso
// "quedan solo N unidades".
func (uc *UseCase) Add(ctx context.Context, userID string, in dto.AddToCartRequest) (*dto.CartResponse, error) {
	if in.ProductName == "" {
		return nil, domain.ErrInvalidInput
	}

	c, err := uc.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &entity.Cart{UserID: userID}
	}

	idx := c.Find(in.ProductName)
	wanted := 1
	if idx >= 0 {
		wanted = c.Items[idx].Quantity + 1
	}

	allowed, warning, err := uc.capToStock(in.ProductName, wanted)
	if err != nil {
		return nil, err
	}
	if allowed <= 0 {
		return nil, fmt.Errorf("%s está agotado: %w", in.ProductName, domain.ErrInsufficientStock)
	}

	if idx >= 0 {
		c.Items[idx].Quantity = allowed
	} else {
		c.Items = append(c.Items, entity.CartItem{
			ProductID:   promo.IdentifySKU(in.ProductName),
			ProductName: in.ProductName,
			UnitPrice:   in.UnitPrice,
			Quantity:    allowed,
		})
	}
	c.UpdatedAt = time.Now()

	if err := uc.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCartResponse(c, warning), nil
}

// ChangeQuantity aplica un delta (+1 / -1) a la línea del producto. Si la
// cantidad resultante es cero o menos la línea se elimina; hacia arriba aplica
// el mismo tope de stock que Add.
func (uc *UseCase) ChangeQuantity(ctx context.Context, userID string, in dto.ChangeQuantityRequest) (*dto.CartResponse, error) {
	c, err := uc.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	idx := c.Find(in.ProductName)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	wanted := c.Items[idx].Quantity + in.Delta
	if wanted <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		c.UpdatedAt = time.Now()
		if err := uc.cartRepo.Save(ctx, c); err != nil {
			return nil, err
		}
		return toCartResponse(c, ""), nil
	}

	warning := ""
	if in.Delta > 0 {
		allowed, w, err := uc.capToStock(in.ProductName, wanted)
		if err != nil {
			return nil, err
		}
		wanted = allowed
		warning = w
	}
	c.Items[idx].Quantity = wanted
	c.UpdatedAt = time.Now()

	if err := uc.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCartResponse(c, warning), nil
}

// Remove elimina la línea del producto del carrito.
func (uc *UseCase) Remove(ctx context.Context, userID, productName string) (*dto.CartResponse, error) {
	c, err := uc.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	idx := c.Find(productName)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.UpdatedAt = time.Now()

	if err := uc.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCartResponse(c, ""), nil
}

// Clear vacía el carrito del usuario.
func (uc *UseCase) Clear(ctx context.Context, userID string) error {
	return uc.cartRepo.Delete(ctx, userID)
}

// capToStock resuelve el nombre al SKU de inventario y topa la cantidad pedida
// al stock disponible. Los productos no identificados no se topan (la
// validación final ocurre al confirmar el pedido). Devuelve la cantidad
// permitida y el aviso de stock bajo si aplica.
func (uc *UseCase) capToStock(productName string, wanted int) (int, string, error) {
	sku := promo.IdentifySKU(productName)
	if sku == "" {
		return wanted, "", nil
	}
	rec, err := uc.inventoryRepo.Get(sku)
	if err != nil {
		return 0, "", err
	}
	if rec == nil || !rec.Active {
		return 0, "", fmt.Errorf("%s ya no está disponible: %w", productName, domain.ErrProductInactive)
	}

	allowed := wanted
	if allowed > rec.Stock {
		allowed = rec.Stock
	}
	remaining := rec.Stock - allowed
	warning := ""
	if remaining <= 3 {
		warning = fmt.Sprintf("quedan solo %d unidades", remaining)
	}
	return allowed, warning, nil
}

func toCartResponse(c *entity.Cart, warning string) *dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.CartItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal(),
		})
	}
	return &dto.CartResponse{
		Items:      items,
		Total:      c.Total(),
		TotalItems: c.TotalItems(),
		Warning:    warning,
	}
}
