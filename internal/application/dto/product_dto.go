package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo (admin).
type CreateProductRequest struct {
	ID          string          `json:"id" validate:"required,min=1,max=100"`
	Name        string          `json:"nombre" validate:"required,min=1,max=200"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Image       string          `json:"imagen"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name        *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"descripcion"`
	Price       *decimal.Decimal `json:"precio"`
	Image       *string          `json:"imagen"`
}

// ProductResponse salida de un producto con su disponibilidad, tal como la
// consume la tienda para pintar las tarjetas del catálogo.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Image       string          `json:"imagen"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"activo"`
	UpdatedAt   time.Time       `json:"actualizado_en"`
}
