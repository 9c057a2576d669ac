package catalog

import (
	"time"

	"github.com/cafevaldore/tienda-api/internal/application/dto"
	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
)

// UseCase catálogo de la tienda: listado público con disponibilidad y gestión
// de productos desde el panel admin. Crear un producto también crea su fila de
// inventario, para que el SKU exista en ambos lados desde el primer momento.
type UseCase struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(productRepo repository.ProductRepository, inventoryRepo repository.InventoryRepository) *UseCase {
	return &UseCase{productRepo: productRepo, inventoryRepo: inventoryRepo}
}

// List devuelve los productos activos con su stock, como los consume la
// tienda. includeInactive incluye también los desactivados (panel admin).
func (uc *UseCase) List(includeInactive bool) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	records, err := uc.inventoryRepo.List()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.InventoryRecord, len(records))
	for _, rec := range records {
		byID[rec.ProductID] = rec
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp := toProductResponse(p, byID[p.ID])
		if !resp.Active && !includeInactive {
			continue
		}
		out = append(out, resp)
	}
	return out, nil
}

// Get devuelve un producto con su disponibilidad.
func (uc *UseCase) Get(id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	rec, err := uc.inventoryRepo.Get(id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(p, rec)
	return &resp, nil
}

// Create crea un producto del catálogo junto con su registro de inventario
// inicial (stock 0, inactivo hasta que el admin lo habilite con stock).
func (uc *UseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.ID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	p := &entity.Product{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	rec := &entity.InventoryRecord{
		ProductID:   p.ID,
		Stock:       0,
		StockMin:    10,
		StockMax:    500,
		Active:      true,
		LastUpdated: now,
		LastReason:  "creacion-producto",
	}
	if err := uc.inventoryRepo.Upsert(rec); err != nil {
		return nil, err
	}
	resp := toProductResponse(p, rec)
	return &resp, nil
}

// Update actualiza los campos presentes del producto.
func (uc *UseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	p.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	rec, err := uc.inventoryRepo.Get(id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(p, rec)
	return &resp, nil
}

// Delete elimina un producto del catálogo.
func (uc *UseCase) Delete(id string) error {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

func toProductResponse(p *entity.Product, rec *entity.InventoryRecord) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		UpdatedAt:   p.UpdatedAt,
	}
	if rec != nil {
		resp.Stock = rec.Stock
		resp.Active = rec.Active
	}
	return resp
}
