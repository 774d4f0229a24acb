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

// RoleUseCase administración de roles. Los usuarios guardan copia de sus roles, así que
// los cambios aquí no se propagan a usuarios ya asignados.
type RoleUseCase struct {
	repo        repository.RoleRepository
	permissions repository.PermissionRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository, permissions repository.PermissionRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo, permissions: permissions}
}

// Create crea un rol ROLE_<NOMBRE>. Los permisos se buscan por nombre; los que no existen
// se ignoran y si no se encuentra ninguno → ErrPermissionsNotFound.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	name := NormalizeRoleName(in.Name)
	if name == "" || name == entity.RolePrefix {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	perms, err := uc.resolvePermissions(ctx, in.Permissions)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        name,
		Permissions: perms,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// GetByID obtiene un rol por ID.
func (uc *RoleUseCase) GetByID(ctx context.Context, id string) (*dto.RoleResponse, error) {
	role, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// Update renombra, reemplaza permisos o cambia el estado del rol.
func (uc *RoleUseCase) Update(ctx context.Context, id string, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := NormalizeRoleName(*in.Name)
		if name == "" || name == entity.RolePrefix {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != role.ID {
			return nil, domain.ErrDuplicate
		}
		role.Name = name
	}
	if in.Permissions != nil {
		perms, err := uc.resolvePermissions(ctx, in.Permissions)
		if err != nil {
			return nil, err
		}
		role.Permissions = perms
	}
	if in.Active != nil {
		role.Active = *in.Active
	}
	role.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// List lista roles.
func (uc *RoleUseCase) List(ctx context.Context, f repository.NameFilter) (*dto.ListResponse[dto.RoleResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toList(list, total, f.Page, toRoleResponse), nil
}

// Delete elimina un rol por ID.
func (uc *RoleUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *RoleUseCase) find(ctx context.Context, id string) (*entity.Role, error) {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	return role, nil
}

func (uc *RoleUseCase) resolvePermissions(ctx context.Context, names []string) ([]entity.Permission, error) {
	names = dedupe(names, NormalizePermissionName)
	if len(names) == 0 {
		return nil, domain.ErrPermissionsNotFound
	}
	found, err := uc.permissions.GetByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domain.ErrPermissionsNotFound
	}
	perms := make([]entity.Permission, 0, len(found))
	for _, p := range found {
		perms = append(perms, *p)
	}
	return perms, nil
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	perms := make([]dto.PermissionResponse, 0, len(r.Permissions))
	for i := range r.Permissions {
		perms = append(perms, *toPermissionResponse(&r.Permissions[i]))
	}
	return &dto.RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: perms,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
