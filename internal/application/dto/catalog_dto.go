package dto

import "time"

// CreateCatalogRequest alta de categoría o marca.
type CreateCatalogRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// UpdateCatalogRequest actualización parcial de categoría o marca.
type UpdateCatalogRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Active      *bool   `json:"active"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
