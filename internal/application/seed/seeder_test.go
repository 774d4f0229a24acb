package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/seed"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/domain/repository/repotest"
	"github.com/jhoicas/stock-api/internal/domain/security"
	"github.com/jhoicas/stock-api/pkg/hash"
)

var adminCfg = seed.Config{AdminUsername: "admin", AdminPassword: "admin-12345", AdminEmail: "admin@stock.local"}

func TestSeeder_PrimeraEjecucion(t *testing.T) {
	perms, roles, users := &repotest.Permissions{}, &repotest.Roles{}, &repotest.Users{}
	ctx := context.Background()

	res, err := seed.New(perms, roles, users).Run(ctx, adminCfg)
	require.NoError(t, err)

	total := len(entity.Resources) * len(entity.Actions)
	assert.Equal(t, total, res.PermissionsCreated)
	assert.Equal(t, 2, res.RolesCreated)
	assert.True(t, res.AdminCreated)

	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, hash.Verify(admin.PasswordHash, "admin-12345"))

	p := security.NewPrincipal(admin)
	assert.True(t, p.HasAnyAuthority(entity.RoleAdmin))
	assert.True(t, p.HasAnyAuthority("DELETE_STOCKTAKING"))

	userRole, err := roles.GetByName(ctx, entity.RoleUser)
	require.NoError(t, err)
	require.NotNil(t, userRole)
	assert.Len(t, userRole.Permissions, len(entity.Resources))
	for _, perm := range userRole.Permissions {
		assert.Contains(t, perm.Name, "READ_", "ROLE_USER solo recibe permisos de lectura")
	}
}

func TestSeeder_EsIdempotente(t *testing.T) {
	perms, roles, users := &repotest.Permissions{}, &repotest.Roles{}, &repotest.Users{}
	ctx := context.Background()
	s := seed.New(perms, roles, users)

	_, err := s.Run(ctx, adminCfg)
	require.NoError(t, err)

	res, err := s.Run(ctx, seed.Config{AdminUsername: "admin", AdminPassword: "otra-clave"})
	require.NoError(t, err)
	assert.Zero(t, res.PermissionsCreated)
	assert.Zero(t, res.RolesCreated)
	assert.Zero(t, res.RolesUpdated)
	assert.False(t, res.AdminCreated)

	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, hash.Verify(admin.PasswordHash, "admin-12345"), "una segunda ejecución no cambia el password")

	_, total, err := perms.List(ctx, repository.NameFilter{Page: repository.Page{Limit: 100}})
	require.NoError(t, err)
	assert.Equal(t, len(entity.Resources)*len(entity.Actions), total)
}

func TestSeeder_SinPassword(t *testing.T) {
	_, err := seed.New(&repotest.Permissions{}, &repotest.Roles{}, &repotest.Users{}).
		Run(context.Background(), seed.Config{AdminUsername: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
