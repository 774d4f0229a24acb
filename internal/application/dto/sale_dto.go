package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta.
type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

// CreateSaleRequest alta de venta. La fecha por defecto es ahora.
type CreateSaleRequest struct {
	Customer string            `json:"customer" validate:"omitempty,max=150"`
	Date     *time.Time        `json:"date"`
	Items    []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateSaleRequest actualización de venta; si Items viene, reemplaza las líneas y recalcula el total.
type UpdateSaleRequest struct {
	Customer *string           `json:"customer" validate:"omitempty,max=150"`
	Date     *time.Time        `json:"date"`
	Items    []SaleItemRequest `json:"items" validate:"omitempty,dive"`
	Active   *bool             `json:"active"`
}

// SaleItemResponse línea de venta en la salida.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Customer  string             `json:"customer"`
	Items     []SaleItemResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	Date      time.Time          `json:"date"`
	Active    bool               `json:"active"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
