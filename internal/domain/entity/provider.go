package entity

import "time"

// Provider proveedor de productos. RUC, DNI y email deben ser únicos entre proveedores
// activos; la unicidad se valida en la capa de aplicación, no en el almacén.
type Provider struct {
	ID        string
	Name      string
	RUC       string // registro tributario
	DNI       string // documento nacional de identidad
	Address   string
	Phone     string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
