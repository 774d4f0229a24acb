package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// PermissionRepository define el puerto de persistencia para Permission.
type PermissionRepository interface {
	Create(ctx context.Context, p *entity.Permission) error
	GetByID(ctx context.Context, id string) (*entity.Permission, error)
	GetByName(ctx context.Context, name string) (*entity.Permission, error)
	GetByNames(ctx context.Context, names []string) ([]*entity.Permission, error)
	Update(ctx context.Context, p *entity.Permission) error
	List(ctx context.Context, f NameFilter) ([]*entity.Permission, int, error)
	Delete(ctx context.Context, id string) error
}
