package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// BrandRepository define el puerto de persistencia para Brand.
type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	GetByName(ctx context.Context, name string) (*entity.Brand, error)
	Update(ctx context.Context, brand *entity.Brand) error
	List(ctx context.Context, f NameFilter) ([]*entity.Brand, int, error)
	Delete(ctx context.Context, id string) error
}
