package inventory_test

import (
	"context"

	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
	"github.com/cafevaldore/tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso de inventario
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

type fakeProductRepo struct {
	products []*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.products = append(f.products, p)
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List() ([]*entity.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	for i, cur := range f.products {
		if cur.ID == p.ID {
			f.products[i] = p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeProductRepo) Delete(id string) error {
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeInventoryRepo struct {
	records map[string]*entity.InventoryRecord
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{records: make(map[string]*entity.InventoryRecord)}
}

func (f *fakeInventoryRepo) Get(productID string) (*entity.InventoryRecord, error) {
	rec, ok := f.records[productID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeInventoryRepo) List() ([]*entity.InventoryRecord, error) {
	out := make([]*entity.InventoryRecord, 0, len(f.records))
	for _, rec := range f.records {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeInventoryRepo) Upsert(rec *entity.InventoryRecord) error {
	cp := *rec
	f.records[rec.ProductID] = &cp
	return nil
}

func (f *fakeInventoryRepo) SetStock(productID string, stock int, reason string) error {
	rec, ok := f.records[productID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Stock = stock
	rec.LastReason = reason
	return nil
}

func (f *fakeInventoryRepo) DecrementIfAvailable(productID string, quantity int, reason string) (bool, error) {
	rec, ok := f.records[productID]
	if !ok || rec.Stock < quantity {
		return false, nil
	}
	rec.Stock -= quantity
	rec.LastReason = reason
	return true, nil
}

func (f *fakeInventoryRepo) SetActive(productID string, active bool) error {
	rec, ok := f.records[productID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Active = active
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func (f *fakeMovementRepo) Create(m *entity.Movement) error {
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) List(productID string, limit int) ([]*entity.Movement, error) {
	out := make([]*entity.Movement, 0, len(f.movements))
	for i := len(f.movements) - 1; i >= 0 && len(out) < limit; i-- {
		m := f.movements[i]
		if productID != "" && m.ProductID != productID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type fakeDeductionRepo struct {
	claimed map[string]bool
}

func newFakeDeductionRepo() *fakeDeductionRepo {
	return &fakeDeductionRepo{claimed: make(map[string]bool)}
}

func (f *fakeDeductionRepo) TryClaim(orderID string) (bool, error) {
	if f.claimed[orderID] {
		return false, nil
	}
	f.claimed[orderID] = true
	return true, nil
}

func (f *fakeDeductionRepo) Exists(orderID string) (bool, error) {
	return f.claimed[orderID], nil
}

// fakeTxRunner ejecuta la función directamente sobre los fakes, sin
// transacción real. Suficiente para verificar la lógica del motor.
type fakeTxRunner struct {
	inv *fakeInventoryRepo
	mov *fakeMovementRepo
	ded *fakeDeductionRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	dedRepo repository.DeductionRepository,
) error) error {
	return fn(f.inv, f.mov, f.ded)
}
