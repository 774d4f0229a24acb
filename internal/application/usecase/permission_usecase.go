package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// PermissionUseCase administración de permisos (nombres ACCION_RECURSO en mayúsculas).
type PermissionUseCase struct {
	repo repository.PermissionRepository
}

// NewPermissionUseCase construye el caso de uso.
func NewPermissionUseCase(repo repository.PermissionRepository) *PermissionUseCase {
	return &PermissionUseCase{repo: repo}
}

// Create crea un permiso con el nombre normalizado.
func (uc *PermissionUseCase) Create(ctx context.Context, in dto.CreatePermissionRequest) (*dto.PermissionResponse, error) {
	name := NormalizePermissionName(in.Name)
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
	perm := &entity.Permission{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, perm); err != nil {
		return nil, err
	}
	return toPermissionResponse(perm), nil
}

// GetByID obtiene un permiso por ID.
func (uc *PermissionUseCase) GetByID(ctx context.Context, id string) (*dto.PermissionResponse, error) {
	perm, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPermissionResponse(perm), nil
}

// Update renombra, cambia descripción o estado.
func (uc *PermissionUseCase) Update(ctx context.Context, id string, in dto.UpdatePermissionRequest) (*dto.PermissionResponse, error) {
	perm, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := NormalizePermissionName(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != perm.ID {
			return nil, domain.ErrDuplicate
		}
		perm.Name = name
	}
	if in.Description != nil {
		perm.Description = *in.Description
	}
	if in.Active != nil {
		perm.Active = *in.Active
	}
	perm.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, perm); err != nil {
		return nil, err
	}
	return toPermissionResponse(perm), nil
}

// List lista permisos.
func (uc *PermissionUseCase) List(ctx context.Context, f repository.NameFilter) (*dto.ListResponse[dto.PermissionResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toList(list, total, f.Page, toPermissionResponse), nil
}

// Delete elimina un permiso por ID.
func (uc *PermissionUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *PermissionUseCase) find(ctx context.Context, id string) (*entity.Permission, error) {
	perm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, domain.ErrPermissionNotFound
	}
	return perm, nil
}

func toPermissionResponse(p *entity.Permission) *dto.PermissionResponse {
	return &dto.PermissionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
