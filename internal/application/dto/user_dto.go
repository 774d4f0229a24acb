package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con el token emitido.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterRequest alta pública de usuario (recibe el rol por defecto).
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	LastName string `json:"last_name" validate:"omitempty,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// CreateUserRequest alta administrativa de usuario con roles por nombre.
type CreateUserRequest struct {
	Name     string   `json:"name" validate:"required,max=100"`
	LastName string   `json:"last_name" validate:"omitempty,max=100"`
	Username string   `json:"username" validate:"required,min=3,max=50"`
	Password string   `json:"password" validate:"required,min=8"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"omitempty,max=30"`
	Roles    []string `json:"roles" validate:"omitempty,dive,required"`
}

// UpdateUserRequest actualización parcial de usuario.
type UpdateUserRequest struct {
	Name     *string  `json:"name" validate:"omitempty,max=100"`
	LastName *string  `json:"last_name" validate:"omitempty,max=100"`
	Password *string  `json:"password" validate:"omitempty,min=8"`
	Email    *string  `json:"email" validate:"omitempty,email"`
	Phone    *string  `json:"phone" validate:"omitempty,max=30"`
	Roles    []string `json:"roles" validate:"omitempty,dive,required"`
	Active   *bool    `json:"active"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Roles     []string  `json:"roles"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MeResponse identidad de la petición autenticada.
type MeResponse struct {
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	Roles       []string `json:"roles"`
	Authorities []string `json:"authorities"`
}
