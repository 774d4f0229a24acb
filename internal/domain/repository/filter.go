package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Page límite y desplazamiento de un listado.
type Page struct {
	Limit  int
	Offset int
}

// Normalize aplica los límites por defecto (20, máximo 100).
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// NameFilter filtro común para catálogos (categorías, marcas, proveedores, roles, permisos, usuarios).
// Name se busca por coincidencia parcial sin distinguir mayúsculas.
type NameFilter struct {
	Name   string
	Active *bool
	Page
}

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Name       string
	CategoryID string
	BrandID    string
	ProviderID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Active     *bool
	Page
}

// SaleFilter filtros del listado de ventas (rango de fechas inclusivo).
type SaleFilter struct {
	From   *time.Time
	To     *time.Time
	UserID string
	Page
}

// StocktakingFilter filtros del listado de inventarios físicos.
type StocktakingFilter struct {
	From      *time.Time
	To        *time.Time
	ProductID string
	Page
}
