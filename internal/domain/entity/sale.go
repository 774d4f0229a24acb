package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem línea de una venta; UnitPrice se copia del producto al registrar la venta.
type SaleItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Sale venta registrada por un usuario (UserID = quien la realizó).
type Sale struct {
	ID        string
	UserID    string
	Customer  string
	Items     []SaleItem
	Total     decimal.Decimal
	Date      time.Time
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
