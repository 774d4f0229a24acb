package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/domain/security"
	"github.com/jhoicas/stock-api/pkg/hash"
)

// TokenIssuer emite tokens para un subject (lo implementa *jwt.Codec).
type TokenIssuer interface {
	Issue(subject string) (string, error)
	TTL() time.Duration
}

// AuthUseCase autenticación: login, registro y recarga del principal por username.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	tokens   TokenIssuer
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, tokens: tokens, now: time.Now}
}

// Authenticate verifica username/password y devuelve el principal.
// Usuario inexistente, inactivo o password incorrecto producen el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*security.Principal, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrInvalidCredentials
	}
	if !hash.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return security.NewPrincipal(user), nil
}

// Login autentica y emite el token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	principal, err := uc.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	issuedAt := uc.now()
	token, err := uc.tokens.Issue(principal.Username)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: issuedAt.Add(uc.tokens.TTL()),
	}, nil
}

// LoadPrincipal mitad de búsqueda de Authenticate, sin verificar password.
// La usa el filtro de autorización en cada petición con token.
func (uc *AuthUseCase) LoadPrincipal(ctx context.Context, username string) (*security.Principal, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrInvalidCredentials
	}
	return security.NewPrincipal(user), nil
}

// Register alta pública: hashea el password y asigna ROLE_USER si existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hashed, err := hash.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	var roles []entity.Role
	defaultRole, err := uc.roleRepo.GetByName(ctx, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	if defaultRole != nil {
		roles = append(roles, *defaultRole)
	}
	now := uc.now()
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
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
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
