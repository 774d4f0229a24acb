package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// StocktakingRepository define el puerto de persistencia para Stocktaking.
type StocktakingRepository interface {
	Create(ctx context.Context, s *entity.Stocktaking) error
	GetByID(ctx context.Context, id string) (*entity.Stocktaking, error)
	Update(ctx context.Context, s *entity.Stocktaking) error
	List(ctx context.Context, f StocktakingFilter) ([]*entity.Stocktaking, int, error)
	Delete(ctx context.Context, id string) error
}
