package http_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/security"
	apphttp "github.com/jhoicas/stock-api/internal/interfaces/http"
)

func principalWith(roleName string, perms ...string) *security.Principal {
	role := entity.Role{Name: roleName, Active: true}
	for _, p := range perms {
		role.Permissions = append(role.Permissions, entity.Permission{Name: p, Active: true})
	}
	return &security.Principal{Username: "u", Roles: []entity.Role{role}}
}

func TestPolicy_LecturasPublicas(t *testing.T) {
	p := apphttp.DefaultPolicy()
	for _, path := range []string{
		"/api/products", "/api/products/", "/api/products/3f0c5b1e-0000-0000-0000-000000000000",
		"/api/categories", "/api/brands/x", "/api/providers",
	} {
		assert.NoError(t, p.Decide("GET", path, nil), path)
	}
	assert.NoError(t, p.Decide("POST", "/api/auth/login", nil))
	assert.NoError(t, p.Decide("POST", "/api/auth/register", nil))
}

func TestPolicy_AnonimoEnRutaProtegida(t *testing.T) {
	p := apphttp.DefaultPolicy()
	for _, c := range []struct{ method, path string }{
		{"GET", "/api/sales"},
		{"GET", "/api/sales/report"},
		{"POST", "/api/products"},
		{"GET", "/api/auth/me"},
		{"GET", "/api/ruta-sin-regla"},
	} {
		err := p.Decide(c.method, c.path, nil)
		require.Error(t, err, c.path)
		assert.NotErrorIs(t, err, domain.ErrAccessDenied, "anónimo es 401, no 403: %s", c.path)
	}
}

func TestPolicy_PermisoPorAccionYRecurso(t *testing.T) {
	p := apphttp.DefaultPolicy()
	editor := principalWith("ROLE_EDITOR", "UPDATE_PRODUCT", "READ_SALE")

	assert.NoError(t, p.Decide("PUT", "/api/products/abc", editor))
	assert.NoError(t, p.Decide("GET", "/api/sales/report", editor))
	assert.ErrorIs(t, p.Decide("DELETE", "/api/products/abc", editor), domain.ErrAccessDenied)
	assert.ErrorIs(t, p.Decide("POST", "/api/stocktaking", editor), domain.ErrAccessDenied)
}

func TestPolicy_AdminPasaTodo(t *testing.T) {
	p := apphttp.DefaultPolicy()
	admin := principalWith(apphttp.RoleAdmin)
	for _, c := range []struct{ method, path string }{
		{"DELETE", "/api/sales/1"},
		{"POST", "/api/roles"},
		{"PUT", "/api/users/1"},
		{"GET", "/api/permissions"},
	} {
		assert.NoError(t, p.Decide(c.method, c.path, admin), c.path)
	}
}

func TestPolicy_IdentidadesSoloAdmin(t *testing.T) {
	p := apphttp.DefaultPolicy()
	// Un permiso READ_USER no alcanza: la gestión de identidades exige el rol.
	u := principalWith("ROLE_USER", "READ_USER")
	err := p.Decide("GET", "/api/users", u)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.Contains(t, err.Error(), "GET /api/users")
}

func TestPolicy_RolInactivoNoOtorga(t *testing.T) {
	p := apphttp.DefaultPolicy()
	u := principalWith(apphttp.RoleAdmin)
	u.Roles[0].Active = false
	assert.ErrorIs(t, p.Decide("POST", "/api/products", u), domain.ErrAccessDenied)
}

func TestPolicy_PrimeraReglaGana(t *testing.T) {
	p, err := apphttp.NewPolicy([]apphttp.Rule{
		{Methods: []string{"GET"}, Pattern: "/api/items/special/", Public: true},
		{Pattern: "/api/items/**", Authorities: []string{"ROLE_X"}},
	})
	require.NoError(t, err)

	assert.NoError(t, p.Decide("GET", "/api/items/special", nil))
	assert.Error(t, p.Decide("GET", "/api/items/other", nil))

	r, ok := p.Match("POST", "/api/items/special")
	require.True(t, ok)
	assert.Equal(t, []string{"ROLE_X"}, r.Authorities)
}

func TestNewPolicy_PatronInvalido(t *testing.T) {
	_, err := apphttp.NewPolicy([]apphttp.Rule{{Pattern: "/api/[abc"}})
	assert.Error(t, err)
}

func TestPolicy_RutasNoCanonicas(t *testing.T) {
	p := apphttp.DefaultPolicy()
	vendedor := principalWith("ROLE_USER", "READ_PRODUCT")

	for _, c := range []struct{ method, path string }{
		{"POST", "/API/USERS"},
		{"POST", "/api/Users/"},
		{"POST", "/api/Providers"},
		{"DELETE", "/Api/Products/abc"},
		{"post", "/api/roles"},
	} {
		assert.ErrorIs(t, p.Decide(c.method, c.path, vendedor), domain.ErrAccessDenied, "%s %s", c.method, c.path)
	}

	assert.NoError(t, p.Decide("GET", "/API/PRODUCTS/", nil))
	assert.NoError(t, p.Decide("HEAD", "/api/Categories", nil))
	assert.NoError(t, p.Decide("GET", "/api/Products/abc", vendedor))

	err := p.Decide("GET", "/API/SALES/", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAccessDenied)

	r, ok := p.Match("POST", "/API/USERS")
	require.True(t, ok)
	assert.Equal(t, []string{apphttp.RoleAdmin}, r.Authorities)
}
