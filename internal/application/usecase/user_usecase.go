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
	"github.com/jhoicas/stock-api/pkg/hash"
)

// UserUseCase administración de usuarios. Los roles se resuelven por nombre y se
// copian dentro del documento del usuario.
type UserUseCase struct {
	repo  repository.UserRepository
	roles repository.RoleRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, roles repository.RoleRepository) *UserUseCase {
	return &UserUseCase{repo: repo, roles: roles}
}

// Create crea un usuario con password hasheado. Un nombre de rol desconocido → ErrRoleNotFound.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	roles, err := uc.resolveRoles(ctx, in.Roles)
	if err != nil {
		return nil, err
	}
	hashed, err := hash.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		LastName:     in.LastName,
		Username:     username,
		PasswordHash: hashed,
		Email:        in.Email,
		Phone:        in.Phone,
		Roles:        roles,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Update actualiza perfil, password, roles o estado. Roles nil = sin cambios.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Roles != nil {
		roles, err := uc.resolveRoles(ctx, in.Roles)
		if err != nil {
			return nil, err
		}
		user.Roles = roles
	}
	if in.Password != nil {
		hashed, err := hash.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista usuarios filtrando por username.
func (uc *UserUseCase) List(ctx context.Context, f repository.NameFilter) (*dto.ListResponse[dto.UserResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toList(list, total, f.Page, toUserResponse), nil
}

// Delete desactiva el usuario; ventas e inventarios conservan su referencia.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Deactivate(ctx, id)
}

func (uc *UserUseCase) find(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UserUseCase) resolveRoles(ctx context.Context, names []string) ([]entity.Role, error) {
	names = dedupe(names, NormalizeRoleName)
	if len(names) == 0 {
		return []entity.Role{}, nil
	}
	found, err := uc.roles.GetByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(found) != len(names) {
		return nil, domain.ErrRoleNotFound
	}
	roles := make([]entity.Role, 0, len(found))
	for _, r := range found {
		roles = append(roles, *r)
	}
	return roles, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Roles:     u.RoleNames(),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
