package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/domain/security"
)

// StocktakingUseCase conteos físicos. SystemQuantity se toma del stock del producto
// al registrar el conteo y no cambia después.
type StocktakingUseCase struct {
	repo     repository.StocktakingRepository
	products repository.ProductRepository
}

// NewStocktakingUseCase construye el caso de uso.
func NewStocktakingUseCase(repo repository.StocktakingRepository, products repository.ProductRepository) *StocktakingUseCase {
	return &StocktakingUseCase{repo: repo, products: products}
}

// Create registra un conteo del producto indicado.
func (uc *StocktakingUseCase) Create(ctx context.Context, in dto.CreateStocktakingRequest) (*dto.StocktakingResponse, error) {
	principal, ok := security.FromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if in.CountedQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	st := &entity.Stocktaking{
		ID:              uuid.New().String(),
		ProductID:       product.ID,
		UserID:          principal.UserID,
		SystemQuantity:  product.Stock,
		CountedQuantity: in.CountedQuantity,
		Difference:      in.CountedQuantity - product.Stock,
		Notes:           in.Notes,
		Date:            date,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return toStocktakingResponse(st), nil
}

// GetByID obtiene un conteo por ID.
func (uc *StocktakingUseCase) GetByID(ctx context.Context, id string) (*dto.StocktakingResponse, error) {
	st, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStocktakingResponse(st), nil
}

// Update corrige la cantidad contada (recalcula la diferencia), notas, fecha o estado.
func (uc *StocktakingUseCase) Update(ctx context.Context, id string, in dto.UpdateStocktakingRequest) (*dto.StocktakingResponse, error) {
	st, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CountedQuantity != nil {
		if *in.CountedQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		st.CountedQuantity = *in.CountedQuantity
		st.Difference = st.CountedQuantity - st.SystemQuantity
	}
	if in.Notes != nil {
		st.Notes = *in.Notes
	}
	if in.Date != nil {
		st.Date = *in.Date
	}
	if in.Active != nil {
		st.Active = *in.Active
	}
	st.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return toStocktakingResponse(st), nil
}

// List lista conteos por rango de fechas y producto.
func (uc *StocktakingUseCase) List(ctx context.Context, f repository.StocktakingFilter) (*dto.ListResponse[dto.StocktakingResponse], error) {
	if err := validateDateRange(f.From, f.To); err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toList(list, total, f.Page, toStocktakingResponse), nil
}

// Delete elimina un conteo por ID.
func (uc *StocktakingUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *StocktakingUseCase) find(ctx context.Context, id string) (*entity.Stocktaking, error) {
	st, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrStocktakingNotFound
	}
	return st, nil
}

func toStocktakingResponse(s *entity.Stocktaking) *dto.StocktakingResponse {
	return &dto.StocktakingResponse{
		ID:              s.ID,
		ProductID:       s.ProductID,
		UserID:          s.UserID,
		SystemQuantity:  s.SystemQuantity,
		CountedQuantity: s.CountedQuantity,
		Difference:      s.Difference,
		Notes:           s.Notes,
		Date:            s.Date,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
