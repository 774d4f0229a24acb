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

// ProviderUseCase casos de uso CRUD para proveedores.
// Alta y actualización pasan por ProviderValidator antes de escribir.
type ProviderUseCase struct {
	repo      repository.ProviderRepository
	validator *ProviderValidator
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(repo repository.ProviderRepository) *ProviderUseCase {
	return &ProviderUseCase{repo: repo, validator: NewProviderValidator(repo)}
}

// Create valida unicidad de RUC/DNI/email y guarda el proveedor.
func (uc *ProviderUseCase) Create(ctx context.Context, in dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.RUC) == "" {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Provider{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(in.Name),
		RUC:     strings.TrimSpace(in.RUC),
		DNI:     strings.TrimSpace(in.DNI),
		Address: in.Address,
		Phone:   in.Phone,
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Active:  true,
	}
	if err := uc.validator.Validate(ctx, p.RUC, p.DNI, p.Email, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *ProviderUseCase) GetByID(ctx context.Context, id string) (*dto.ProviderResponse, error) {
	p, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

// Update aplica los cambios y vuelve a validar unicidad excluyendo al propio proveedor.
func (uc *ProviderUseCase) Update(ctx context.Context, id string, in dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	p, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.RUC != nil {
		p.RUC = strings.TrimSpace(*in.RUC)
	}
	if in.DNI != nil {
		p.DNI = strings.TrimSpace(*in.DNI)
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Email != nil {
		p.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	if p.Name == "" || p.RUC == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validator.Validate(ctx, p.RUC, p.DNI, p.Email, p.ID); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

// List lista proveedores con filtro por nombre y paginación.
func (uc *ProviderUseCase) List(ctx context.Context, f repository.NameFilter) (*dto.ListResponse[dto.ProviderResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toList(list, total, f.Page, toProviderResponse), nil
}

// Delete elimina un proveedor por ID.
func (uc *ProviderUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProviderUseCase) find(ctx context.Context, id string) (*entity.Provider, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProviderNotFound
	}
	return p, nil
}

func toProviderResponse(p *entity.Provider) *dto.ProviderResponse {
	return &dto.ProviderResponse{
		ID:        p.ID,
		Name:      p.Name,
		RUC:       p.RUC,
		DNI:       p.DNI,
		Address:   p.Address,
		Phone:     p.Phone,
		Email:     p.Email,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
