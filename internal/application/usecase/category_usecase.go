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

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El nombre es único (sin distinguir mayúsculas).
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCatalogRequest) (*dto.CategoryResponse, error) {
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
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Update actualiza nombre, descripción o estado.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCatalogRequest) (*dto.CategoryResponse, error) {
	c, err := uc.find(ctx, id)
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
		if other != nil && other.ID != c.ID {
			return nil, domain.ErrDuplicate
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List lista categorías con filtro por nombre y paginación.
func (uc *CategoryUseCase) List(ctx context.Context, f repository.NameFilter) (*dto.ListResponse[dto.CategoryResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toList(list, total, f.Page, toCategoryResponse), nil
}

// Delete elimina una categoría por ID.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CategoryUseCase) find(ctx context.Context, id string) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
