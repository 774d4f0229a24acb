package dto

import "time"

// CreateProviderRequest alta de proveedor.
type CreateProviderRequest struct {
	Name    string `json:"name" validate:"required,max=150"`
	RUC     string `json:"ruc" validate:"required,numeric,len=11"`
	DNI     string `json:"dni" validate:"omitempty,numeric,len=8"`
	Address string `json:"address" validate:"omitempty,max=250"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Email   string `json:"email" validate:"required,email"`
}

// UpdateProviderRequest actualización parcial de proveedor.
type UpdateProviderRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=150"`
	RUC     *string `json:"ruc" validate:"omitempty,numeric,len=11"`
	DNI     *string `json:"dni" validate:"omitempty,numeric,len=8"`
	Address *string `json:"address" validate:"omitempty,max=250"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Active  *bool   `json:"active"`
}

// ProviderResponse salida de un proveedor.
type ProviderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RUC       string    `json:"ruc"`
	DNI       string    `json:"dni"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
