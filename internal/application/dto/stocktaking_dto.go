package dto

import "time"

// CreateStocktakingRequest registro de un conteo físico.
type CreateStocktakingRequest struct {
	ProductID       string     `json:"product_id" validate:"required,uuid"`
	CountedQuantity int64      `json:"counted_quantity" validate:"min=0"`
	Notes           string     `json:"notes" validate:"omitempty,max=500"`
	Date            *time.Time `json:"date"`
}

// UpdateStocktakingRequest corrección de un conteo.
type UpdateStocktakingRequest struct {
	CountedQuantity *int64     `json:"counted_quantity" validate:"omitempty,min=0"`
	Notes           *string    `json:"notes" validate:"omitempty,max=500"`
	Date            *time.Time `json:"date"`
	Active          *bool      `json:"active"`
}

// StocktakingResponse salida de un conteo.
type StocktakingResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	UserID          string    `json:"user_id"`
	SystemQuantity  int64     `json:"system_quantity"`
	CountedQuantity int64     `json:"counted_quantity"`
	Difference      int64     `json:"difference"`
	Notes           string    `json:"notes"`
	Date            time.Time `json:"date"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
