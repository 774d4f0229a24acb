package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para Role.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	// GetByNames devuelve los roles existentes cuyo nombre está en names (los ausentes se omiten).
	GetByNames(ctx context.Context, names []string) ([]*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	List(ctx context.Context, f NameFilter) ([]*entity.Role, int, error)
	Delete(ctx context.Context, id string) error
}
