package inventory

import (
	"context"

	"github.com/cafevaldore/tienda-api/internal/application/dto"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// descuento: marca de idempotencia, decrementos y movimientos se confirman
// o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
		dedRepo repository.DeductionRepository,
	) error) error
}

// ReportPDFGenerator genera la representación PDF del reporte de inventario
// para el panel admin.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *dto.InventoryReportResponse) ([]byte, error)
}
