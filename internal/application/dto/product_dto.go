package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code        string          `json:"code" validate:"omitempty,max=60"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"omitempty,max=1000"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock" validate:"min=0"`
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	BrandID     string          `json:"brand_id" validate:"required,uuid"`
	ProviderID  string          `json:"provider_id" validate:"required,uuid"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Code        *string          `json:"code" validate:"omitempty,max=60"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int64           `json:"stock" validate:"omitempty,min=0"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	BrandID     *string          `json:"brand_id" validate:"omitempty,uuid"`
	ProviderID  *string          `json:"provider_id" validate:"omitempty,uuid"`
	Active      *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	CategoryID  string          `json:"category_id"`
	BrandID     string          `json:"brand_id"`
	ProviderID  string          `json:"provider_id"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
