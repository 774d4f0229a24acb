package dto

import "time"

// CreateRoleRequest alta de rol; permissions son nombres de permisos existentes.
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,max=60"`
	Permissions []string `json:"permissions" validate:"required,min=1,dive,required"`
}

// UpdateRoleRequest actualización parcial de rol.
type UpdateRoleRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=60"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,required"`
	Active      *bool    `json:"active"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Permissions []PermissionResponse `json:"permissions"`
	Active      bool                 `json:"active"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// CreatePermissionRequest alta de permiso.
type CreatePermissionRequest struct {
	Name        string `json:"name" validate:"required,max=60"`
	Description string `json:"description" validate:"omitempty,max=200"`
}

// UpdatePermissionRequest actualización parcial de permiso.
type UpdatePermissionRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=60"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	Active      *bool   `json:"active"`
}

// PermissionResponse salida de un permiso.
type PermissionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
