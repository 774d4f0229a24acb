package entity

import "time"

// Prefijo obligatorio de los nombres de rol.
const RolePrefix = "ROLE_"

// Roles creados por el seed.
const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// Role agrupa permisos. Los permisos se guardan embebidos en el documento del rol.
type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
	Active      bool         `json:"active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// PermissionNames devuelve los nombres de los permisos del rol.
func (r Role) PermissionNames() []string {
	names := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		names = append(names, p.Name)
	}
	return names
}
