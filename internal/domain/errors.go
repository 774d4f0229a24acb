package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	ErrBrandNotFound       = errors.New("marca no encontrada")
	ErrCategoryNotFound    = errors.New("categoría no encontrada")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrProviderNotFound    = errors.New("proveedor no encontrado")
	ErrRoleNotFound        = errors.New("rol no encontrado")
	ErrSaleNotFound        = errors.New("venta no encontrada")
	ErrStocktakingNotFound = errors.New("inventario físico no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrPermissionNotFound  = errors.New("permiso no encontrado")
	// ErrPermissionsNotFound ninguno de los nombres de permiso enviados existe.
	ErrPermissionsNotFound = errors.New("ninguno de los permisos indicados existe")

	ErrProviderAlreadyExists = errors.New("el proveedor ya existe")

	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidToken       = errors.New("token inválido o expirado")
	ErrAccessDenied       = errors.New("acceso denegado")

	ErrInvalidDateRange  = errors.New("la fecha final es anterior a la inicial")
	ErrInvalidPriceRange = errors.New("el precio máximo es menor que el mínimo")

	ErrReportGeneration = errors.New("no se pudo generar el reporte")
)

// Campos que puede reportar un ConflictError de proveedor, en el orden en que se listan.
const (
	FieldRUC   = "RUC"
	FieldDNI   = "DNI"
	FieldEmail = "email"
)

// ConflictError indica que uno o más campos únicos ya están en uso por otro proveedor.
type ConflictError struct {
	Fields []string
}

func (e *ConflictError) Error() string {
	return "ya existe un proveedor con el mismo " + strings.Join(e.Fields, ", ")
}

// Is permite errors.Is(err, ErrProviderAlreadyExists).
func (e *ConflictError) Is(target error) bool {
	return target == ErrProviderAlreadyExists
}

// IsNotFound informa si err es alguno de los errores de "no encontrado".
func IsNotFound(err error) bool {
	for _, nf := range []error{
		ErrNotFound, ErrBrandNotFound, ErrCategoryNotFound, ErrProductNotFound,
		ErrProviderNotFound, ErrRoleNotFound, ErrSaleNotFound, ErrStocktakingNotFound,
		ErrUserNotFound, ErrPermissionNotFound, ErrPermissionsNotFound,
	} {
		if errors.Is(err, nf) {
			return true
		}
	}
	return false
}
