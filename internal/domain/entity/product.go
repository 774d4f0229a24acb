package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del inventario. Categoría, marca y proveedor se referencian por id.
type Product struct {
	ID          string
	Code        string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
	CategoryID  string
	BrandID     string
	ProviderID  string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
