package entity

import "time"

// User representa una cuenta del sistema. Los roles se guardan embebidos (denormalizados)
// dentro del documento del usuario.
type User struct {
	ID           string
	Name         string
	LastName     string
	Username     string // único
	PasswordHash string // bcrypt hash, nunca se serializa hacia afuera
	Email        string
	Phone        string
	Roles        []Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleNames devuelve los nombres de los roles asignados.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
