package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// ProviderRepository define el puerto de persistencia para Provider.
// Los Exists* consideran solo proveedores activos y excluyen excludeID (vacío = no excluir).
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	GetByID(ctx context.Context, id string) (*entity.Provider, error)
	Update(ctx context.Context, provider *entity.Provider) error
	List(ctx context.Context, f NameFilter) ([]*entity.Provider, int, error)
	Delete(ctx context.Context, id string) error
	ExistsByRUC(ctx context.Context, ruc, excludeID string) (bool, error)
	ExistsByDNI(ctx context.Context, dni, excludeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
}
