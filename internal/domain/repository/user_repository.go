package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el documento no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, f NameFilter) ([]*entity.User, int, error)
	// Deactivate marca al usuario como inactivo; ventas e inventarios siguen referenciándolo.
	Deactivate(ctx context.Context, id string) error
}
