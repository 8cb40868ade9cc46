package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	MinPrice    decimal.Decimal `json:"min_price"`
}

// UpdateProductRequest entrada para actualizar un producto (el stock se maneja por lotes).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	MinPrice    *decimal.Decimal `json:"min_price"`
}

// ProductResponse salida de un producto. TotalStock es la suma de sus lotes
// en todas las sucursales; se calcula al responder, no se almacena.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	MinPrice    decimal.Decimal `json:"min_price"`
	TotalStock  decimal.Decimal `json:"total_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []*ProductResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
