package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, f SaleFilter) ([]*entity.Sale, int, error)
	Delete(ctx context.Context, id string) error
}
