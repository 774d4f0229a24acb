package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// BrandUseCase casos de uso CRUD para marcas.
type BrandUseCase struct {
	repo repository.BrandRepository
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo}
}

// Create registra una marca nueva; nombre duplicado → ErrDuplicate.
func (uc *BrandUseCase) Create(ctx context.Context, in dto.CreateCatalogRequest) (*dto.BrandResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	b := &entity.Brand{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// GetByID obtiene una marca por ID.
func (uc *BrandUseCase) GetByID(ctx context.Context, id string) (*dto.BrandResponse, error) {
	b, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// Update actualiza nombre, descripción o estado.
func (uc *BrandUseCase) Update(ctx context.Context, id string, in dto.UpdateCatalogRequest) (*dto.BrandResponse, error) {
	b, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != b.ID {
			return nil, domain.ErrDuplicate
		}
		b.Name = name
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Active != nil {
		b.Active = *in.Active
	}
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// List lista marcas con filtro por nombre y paginación.
func (uc *BrandUseCase) List(ctx context.Context, f repository.NameFilter) (*dto.ListResponse[dto.BrandResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toList(list, total, f.Page, toBrandResponse), nil
}

// Delete elimina una marca por ID.
func (uc *BrandUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *BrandUseCase) find(ctx context.Context, id string) (*entity.Brand, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBrandNotFound
	}
	return b, nil
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Active:      b.Active,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
