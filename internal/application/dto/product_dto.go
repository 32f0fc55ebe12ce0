package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	Price       decimal.Decimal `json:"price"`
	MinStock    int64           `json:"min_stock"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	Price       decimal.Decimal `json:"price"`
	MinStock    int64           `json:"min_stock"`
	Active      *bool           `json:"active,omitempty"`
}

// ProductResponse producto expuesto por la API.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	MinStock    int64           `json:"min_stock"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}
