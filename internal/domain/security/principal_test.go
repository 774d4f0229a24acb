package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

func perm(name string) entity.Permission { return entity.Permission{Name: name, Active: true} }

func TestAuthorities_UnionDeRolesYPermisos(t *testing.T) {
	u := &entity.User{
		ID:       "u1",
		Username: "admin",
		Roles: []entity.Role{
			{Name: "ROLE_ADMIN", Active: true, Permissions: []entity.Permission{perm("CREATE_PRODUCT"), perm("DELETE_PRODUCT")}},
			{Name: "ROLE_SELLER", Active: true, Permissions: []entity.Permission{perm("CREATE_SALE"), perm("CREATE_PRODUCT")}},
		},
	}
	p := NewPrincipal(u)

	assert.Equal(t,
		[]string{"CREATE_PRODUCT", "CREATE_SALE", "DELETE_PRODUCT", "ROLE_ADMIN", "ROLE_SELLER"},
		p.Authorities())
}

func TestAuthorities_IgnoraInactivos(t *testing.T) {
	p := &Principal{Roles: []entity.Role{
		{Name: "ROLE_OLD", Active: false, Permissions: []entity.Permission{perm("DELETE_USER")}},
		{Name: "ROLE_USER", Active: true, Permissions: []entity.Permission{{Name: "READ_SALE", Active: false}}},
	}}

	assert.Equal(t, []string{"ROLE_USER"}, p.Authorities())
}

func TestHasAnyAuthority(t *testing.T) {
	p := &Principal{Roles: []entity.Role{{Name: "ROLE_USER", Active: true, Permissions: []entity.Permission{perm("READ_SALE")}}}}

	assert.True(t, p.HasAnyAuthority("ROLE_ADMIN", "READ_SALE"))
	assert.False(t, p.HasAnyAuthority("ROLE_ADMIN"))

	var nilP *Principal
	assert.False(t, nilP.HasAnyAuthority("ROLE_USER"))
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), &Principal{Username: "ana"})
	p, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "ana", p.Username)
}
