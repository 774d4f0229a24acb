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

// ProductUseCase casos de uso CRUD para productos. Categoría, marca y proveedor
// referenciados deben existir al crear o actualizar.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	providers  repository.ProviderRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	providers repository.ProviderRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, brands: brands, providers: providers}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(ctx, in.CategoryID, in.BrandID, in.ProviderID); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Code:        strings.TrimSpace(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		BrandID:     in.BrandID,
		ProviderID:  in.ProviderID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto; solo se validan las referencias que cambian.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	var categoryID, brandID, providerID string
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		categoryID = *in.CategoryID
	}
	if in.BrandID != nil && *in.BrandID != product.BrandID {
		brandID = *in.BrandID
	}
	if in.ProviderID != nil && *in.ProviderID != product.ProviderID {
		providerID = *in.ProviderID
	}
	if err := uc.checkRefs(ctx, categoryID, brandID, providerID); err != nil {
		return nil, err
	}
	if in.Code != nil {
		product.Code = strings.TrimSpace(*in.Code)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if categoryID != "" {
		product.CategoryID = categoryID
	}
	if brandID != "" {
		product.BrandID = brandID
	}
	if providerID != "" {
		product.ProviderID = providerID
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if product.Name == "" || product.Price.IsNegative() || product.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros. max_price < min_price → ErrInvalidPriceRange.
func (uc *ProductUseCase) List(ctx context.Context, f repository.ProductFilter) (*dto.ListResponse[dto.ProductResponse], error) {
	if f.MinPrice != nil && f.MaxPrice != nil && f.MaxPrice.LessThan(*f.MinPrice) {
		return nil, domain.ErrInvalidPriceRange
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toList(list, total, f.Page, toProductResponse), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) find(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// checkRefs comprueba las referencias no vacías.
func (uc *ProductUseCase) checkRefs(ctx context.Context, categoryID, brandID, providerID string) error {
	if categoryID != "" {
		c, err := uc.categories.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrCategoryNotFound
		}
	}
	if brandID != "" {
		b, err := uc.brands.GetByID(ctx, brandID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrBrandNotFound
		}
	}
	if providerID != "" {
		p, err := uc.providers.GetByID(ctx, providerID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProviderNotFound
		}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		BrandID:     p.BrandID,
		ProviderID:  p.ProviderID,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
