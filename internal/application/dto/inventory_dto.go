package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateStockRequest fija el stock absoluto de un SKU (admin).
type UpdateStockRequest struct {
	Stock  int    `json:"stock" validate:"min=0"`
	Reason string `json:"motivo"`
}

// AdjustStockRequest aplica un delta al stock (positivo o negativo).
type AdjustStockRequest struct {
	Change int    `json:"cambio" validate:"required"`
	Reason string `json:"motivo"`
}

// ToggleActiveRequest activa o desactiva un SKU.
type ToggleActiveRequest struct {
	Active bool `json:"activo"`
}

// InventoryItemResponse una fila de inventario con los datos del producto.
type InventoryItemResponse struct {
	ProductID   string          `json:"id"`
	Name        string          `json:"nombre"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	StockMin    int             `json:"stock_minimo"`
	StockMax    int             `json:"stock_maximo"`
	Active      bool            `json:"activo"`
	LastUpdated time.Time       `json:"ultima_actualizacion"`
	LastReason  string          `json:"ultimo_motivo"`
}

// MovementResponse una entrada del libro de movimientos.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"producto_id"`
	ProductName string    `json:"producto_nombre"`
	Quantity    int       `json:"cantidad"`
	Reason      string    `json:"motivo"`
	Date        time.Time `json:"fecha"`
}

// InventoryReportResponse resumen del inventario para el panel admin.
type InventoryReportResponse struct {
	TotalProducts    int                     `json:"total_productos"`
	TotalStock       int                     `json:"stock_total"`
	ActiveProducts   int                     `json:"productos_activos"`
	InactiveProducts int                     `json:"productos_inactivos"`
	LowStock         int                     `json:"productos_bajo_stock"`
	OutOfStock       int                     `json:"productos_agotados"`
	TotalValue       decimal.Decimal         `json:"valor_total"`
	Products         []InventoryItemResponse `json:"productos"`
	GeneratedAt      time.Time               `json:"fecha_generacion"`
}
