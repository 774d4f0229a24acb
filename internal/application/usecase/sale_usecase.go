package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/domain/security"
)

// SaleUseCase registro y consulta de ventas. El usuario que realiza la venta es
// siempre el principal de la petición.
type SaleUseCase struct {
	repo     repository.SaleRepository
	products repository.ProductRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(repo repository.SaleRepository, products repository.ProductRepository) *SaleUseCase {
	return &SaleUseCase{repo: repo, products: products}
}

// Create registra una venta. Precio unitario tomado del producto; total = Σ subtotales.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	principal, ok := security.FromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	items, total, err := uc.priceItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		UserID:    principal.UserID,
		Customer:  strings.TrimSpace(in.Customer),
		Items:     items,
		Total:     total,
		Date:      date,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// GetByID obtiene una venta por ID.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Update corrige cliente, fecha o estado; si llegan líneas se recalcula el total con
// los precios vigentes.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(in.Items) > 0 {
		items, total, err := uc.priceItems(ctx, in.Items)
		if err != nil {
			return nil, err
		}
		sale.Items, sale.Total = items, total
	}
	if in.Customer != nil {
		sale.Customer = strings.TrimSpace(*in.Customer)
	}
	if in.Date != nil {
		sale.Date = *in.Date
	}
	if in.Active != nil {
		sale.Active = *in.Active
	}
	sale.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// List lista ventas por rango de fechas y usuario. to < from → ErrInvalidDateRange.
func (uc *SaleUseCase) List(ctx context.Context, f repository.SaleFilter) (*dto.ListResponse[dto.SaleResponse], error) {
	if err := validateDateRange(f.From, f.To); err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toList(list, total, f.Page, toSaleResponse), nil
}

// Delete elimina una venta por ID.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *SaleUseCase) find(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return sale, nil
}

func (uc *SaleUseCase) priceItems(ctx context.Context, in []dto.SaleItemRequest) ([]entity.SaleItem, decimal.Decimal, error) {
	if len(in) == 0 {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}
	items := make([]entity.SaleItem, 0, len(in))
	total := decimal.Zero
	for _, it := range in {
		if it.Quantity <= 0 {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		product, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if product == nil {
			return nil, decimal.Zero, domain.ErrProductNotFound
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(it.Quantity))
		items = append(items, entity.SaleItem{
			ProductID: product.ID,
			Quantity:  it.Quantity,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}
	return items, total, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Customer:  s.Customer,
		Items:     items,
		Total:     s.Total,
		Date:      s.Date,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
