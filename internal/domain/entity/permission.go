package entity

import "time"

// Acciones sobre recursos; el nombre de un permiso es ACCION_RECURSO (ej: CREATE_PRODUCT).
const (
	ActionRead   = "READ"
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Recursos protegidos por permisos.
const (
	ResourceProduct     = "PRODUCT"
	ResourceCategory    = "CATEGORY"
	ResourceBrand       = "BRAND"
	ResourceProvider    = "PROVIDER"
	ResourceSale        = "SALE"
	ResourceStocktaking = "STOCKTAKING"
	ResourceUser        = "USER"
	ResourceRole        = "ROLE"
	ResourcePermission  = "PERMISSION"
)

// Resources lista todos los recursos (usado por el seed).
var Resources = []string{
	ResourceProduct, ResourceCategory, ResourceBrand, ResourceProvider,
	ResourceSale, ResourceStocktaking, ResourceUser, ResourceRole, ResourcePermission,
}

// Actions lista todas las acciones.
var Actions = []string{ActionRead, ActionCreate, ActionUpdate, ActionDelete}

// PermissionName construye el nombre canónico ACCION_RECURSO.
func PermissionName(action, resource string) string {
	return action + "_" + resource
}

// Permission es una hoja: un nombre en mayúsculas y un flag de activo.
type Permission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
