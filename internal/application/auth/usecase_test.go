package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/auth"
	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository/repotest"
	"github.com/jhoicas/stock-api/pkg/hash"
)

type stubTokens struct{}

func (stubTokens) Issue(subject string) (string, error) { return "tok-" + subject, nil }
func (stubTokens) TTL() time.Duration                   { return time.Hour }

// newFixture crea un usuario "admin" con ROLE_ADMIN (activo) y un permiso inactivo.
func newFixture(t *testing.T) (*auth.AuthUseCase, *repotest.Users, *repotest.Roles) {
	t.Helper()
	users := &repotest.Users{}
	roles := &repotest.Roles{}

	pw, err := hash.Hash("secret-123")
	require.NoError(t, err)

	adminRole := entity.Role{
		ID:     "r-admin",
		Name:   entity.RoleAdmin,
		Active: true,
		Permissions: []entity.Permission{
			{ID: "p1", Name: "CREATE_PRODUCT", Active: true},
			{ID: "p2", Name: "DELETE_PRODUCT", Active: false},
		},
	}
	require.NoError(t, roles.Create(context.Background(), &adminRole))
	require.NoError(t, roles.Create(context.Background(), &entity.Role{ID: "r-user", Name: entity.RoleUser, Active: true}))
	require.NoError(t, users.Create(context.Background(), &entity.User{
		ID: "u-1", Username: "admin", PasswordHash: pw, Roles: []entity.Role{adminRole}, Active: true,
	}))

	return auth.NewAuthUseCase(users, roles, stubTokens{}), users, roles
}

func TestAuthenticate_PasswordCorrecto(t *testing.T) {
	uc, _, _ := newFixture(t)

	p, err := uc.Authenticate(context.Background(), "admin", "secret-123")
	require.NoError(t, err)
	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, []string{"CREATE_PRODUCT", entity.RoleAdmin}, p.Authorities())
}

func TestAuthenticate_FallosIndistinguibles(t *testing.T) {
	uc, users, _ := newFixture(t)
	ctx := context.Background()

	_, errPw := uc.Authenticate(ctx, "admin", "incorrecto")
	_, errUser := uc.Authenticate(ctx, "nadie", "secret-123")

	require.NoError(t, users.Deactivate(ctx, "u-1"))
	_, errInactive := uc.Authenticate(ctx, "admin", "secret-123")

	for _, err := range []error{errPw, errUser, errInactive} {
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
}

func TestLogin_EmiteToken(t *testing.T) {
	uc, _, _ := newFixture(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "secret-123"})
	require.NoError(t, err)
	assert.Equal(t, "tok-admin", out.Token)
	assert.Equal(t, "Bearer", out.TokenType)
	assert.True(t, out.ExpiresAt.After(time.Now()))
}

func TestLoadPrincipal(t *testing.T) {
	uc, _, _ := newFixture(t)

	p, err := uc.LoadPrincipal(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", p.Username)

	_, err = uc.LoadPrincipal(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegister_AsignaRolUser(t *testing.T) {
	uc, users, _ := newFixture(t)
	ctx := context.Background()

	out, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Username: "ana", Password: "password-1", Email: "ana@x.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleUser}, out.Roles)

	stored, err := users.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "password-1", stored.PasswordHash)
	assert.True(t, hash.Verify(stored.PasswordHash, "password-1"))

	_, err = uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Username: "ana", Password: "password-1", Email: "ana@x.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
