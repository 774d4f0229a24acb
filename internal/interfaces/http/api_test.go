package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/auth"
	"github.com/jhoicas/stock-api/internal/application/report"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository/repotest"
	"github.com/jhoicas/stock-api/internal/domain/security"
	apphttp "github.com/jhoicas/stock-api/internal/interfaces/http"
	"github.com/jhoicas/stock-api/pkg/hash"
	pkgjwt "github.com/jhoicas/stock-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "stock-api-test"
	testPassword  = "clave-segura-123"
)

type stubPDF struct{}

func (stubPDF) GenerateSalesReport(context.Context, *report.SalesReport) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

type stubXML struct{}

func (stubXML) ExportStocktaking(context.Context, *report.StocktakingExport) ([]byte, string, error) {
	return []byte("<stocktakingExport/>"), "SHA-256=dGVzdA==", nil
}

type testEnv struct {
	app   *fiber.App
	codec *pkgjwt.Codec
	users *repotest.Users
}

// buildTestApp arma la API completa sobre repositorios en memoria con tres usuarios:
//   - admin: ROLE_ADMIN
//   - vendedor: ROLE_USER (solo lectura de productos)
//   - compras: ROLE_COMPRAS con CREATE_PROVIDER
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	users := &repotest.Users{}
	roles := &repotest.Roles{}
	perms := &repotest.Permissions{}
	categories := &repotest.Categories{}
	brands := &repotest.Brands{}
	providers := &repotest.Providers{}
	products := &repotest.Products{}
	sales := &repotest.Sales{}
	stocktakings := &repotest.Stocktakings{}

	perm := func(name string) entity.Permission {
		return entity.Permission{ID: "p-" + name, Name: name, Active: true}
	}
	adminRole := entity.Role{ID: "r-admin", Name: entity.RoleAdmin, Active: true}
	userRole := entity.Role{ID: "r-user", Name: entity.RoleUser, Active: true,
		Permissions: []entity.Permission{perm("READ_PRODUCT")}}
	comprasRole := entity.Role{ID: "r-compras", Name: "ROLE_COMPRAS", Active: true,
		Permissions: []entity.Permission{perm("CREATE_PROVIDER")}}
	for _, r := range []entity.Role{adminRole, userRole, comprasRole} {
		r := r
		require.NoError(t, roles.Create(ctx, &r))
	}

	pwd, err := hash.Hash(testPassword)
	require.NoError(t, err)
	for _, u := range []struct {
		id, username string
		role         entity.Role
	}{
		{"00000000-0000-0000-0000-0000000000a1", "admin", adminRole},
		{"00000000-0000-0000-0000-0000000000a2", "vendedor", userRole},
		{"00000000-0000-0000-0000-0000000000a3", "compras", comprasRole},
	} {
		require.NoError(t, users.Create(ctx, &entity.User{
			ID: u.id, Username: u.username, Name: u.username, PasswordHash: pwd,
			Roles: []entity.Role{u.role}, Active: true,
		}))
	}

	codec, err := pkgjwt.NewCodec(testJWTSecret, testIssuer, time.Hour)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(users, roles, codec),
		CategoryUC:    usecase.NewCategoryUseCase(categories),
		BrandUC:       usecase.NewBrandUseCase(brands),
		ProviderUC:    usecase.NewProviderUseCase(providers),
		ProductUC:     usecase.NewProductUseCase(products, categories, brands, providers),
		SaleUC:        usecase.NewSaleUseCase(sales, products),
		StocktakingUC: usecase.NewStocktakingUseCase(stocktakings, products),
		UserUC:        usecase.NewUserUseCase(users, roles),
		RoleUC:        usecase.NewRoleUseCase(roles, perms),
		PermissionUC:  usecase.NewPermissionUseCase(perms),
		ReportUC:      report.NewReportUseCase(sales, stocktakings, products, stubPDF{}, stubXML{}),
		Tokens:        codec,
	})
	return &testEnv{app: app, codec: codec, users: users}
}

// tokenFor emite un token directamente con el codec, sin pasar por login.
func (e *testEnv) tokenFor(t *testing.T, username string) string {
	t.Helper()
	tok, err := e.codec.Issue(username)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza la petición y devuelve la respuesta; body nil → sin cuerpo.
func (e *testEnv) doRequest(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func newProvider(ruc, email string) map[string]any {
	return map[string]any{"name": "Distribuidora Norte", "ruc": ruc, "email": email}
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_AdminObtieneToken(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "admin", "password": testPassword})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "la respuesta debe traer data")
	assert.NotEmpty(t, data["token"], "data.token no debe estar vacío")
	assert.Equal(t, "Bearer", data["token_type"])
	assert.EqualValues(t, 200, body["status"])
}

func TestLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "admin", "password": "otra-clave"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])
	assert.Equal(t, "POST /api/auth/login", body["path"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestLogin_UsuarioInexistenteIndistinguible(t *testing.T) {
	env := buildTestApp(t)
	bad := decode(t, env.doRequest(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "admin", "password": "otra-clave"}))
	missing := decode(t, env.doRequest(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "nadie", "password": "otra-clave"}))

	assert.Equal(t, bad["code"], missing["code"])
	assert.Equal(t, bad["message"], missing["message"],
		"usuario inexistente y password incorrecto deben responder igual")
}

func TestLogin_CuerpoInvalido_Retorna400(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Contains(t, body["errors"], map[string]any{"field": "password", "rule": "required"})
}

func TestMe_DevuelveAutoridades(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodGet, "/api/auth/me", env.tokenFor(t, "compras"), nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, "compras", data["username"])
	assert.Equal(t, []any{"CREATE_PROVIDER", "ROLE_COMPRAS"}, data["authorities"])
}

func TestMe_SinToken_Retorna401(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtro de autorización
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthFilter_TokenInvalido_Retorna401(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodGet, "/api/sales", "Bearer token.invalido.aqui", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decode(t, resp)["code"])
}

func TestAuthFilter_TokenInvalidoEnRutaPublica_Retorna401(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodGet, "/api/products", "Bearer token.invalido.aqui", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un token presente pero inválido se rechaza aunque la ruta sea pública")
}

func TestAuthFilter_EsquemaDistintoSeIgnora(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodGet, "/api/products", "Basic YWRtaW46YWRtaW4=", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthFilter_UsuarioDesactivadoConTokenVigente_Retorna401(t *testing.T) {
	env := buildTestApp(t)
	token := env.tokenFor(t, "vendedor")
	require.NoError(t, env.users.Deactivate(context.Background(), "00000000-0000-0000-0000-0000000000a2"))

	resp := env.doRequest(t, http.MethodGet, "/api/sales", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decode(t, resp)["code"])
}

type failingLoader struct{ err error }

func (f failingLoader) LoadPrincipal(context.Context, string) (*security.Principal, error) {
	return nil, f.err
}

func TestAuthFilter_FalloAlRecargarPrincipal_Retorna401(t *testing.T) {
	codec, err := pkgjwt.NewCodec(testJWTSecret, testIssuer, time.Hour)
	require.NoError(t, err)
	tok, err := codec.Issue("admin")
	require.NoError(t, err)

	for name, loadErr := range map[string]error{
		"almacén caído":        errors.New("conn refused"),
		"credenciales":         domain.ErrInvalidCredentials,
		"credenciales envuelto": fmt.Errorf("usuario inactivo: %w", domain.ErrInvalidCredentials),
	} {
		t.Run(name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
			app.Use(apphttp.AuthFilter(codec, failingLoader{err: loadErr}))
			app.Get("/api/products", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			req.Header.Set("Authorization", "Bearer "+tok)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "INVALID_TOKEN", decode(t, resp)["code"])
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Política y proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestProviders_ListadoPublico(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodGet, "/api/providers", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, []any{}, data["items"])
	page := data["page"].(map[string]any)
	assert.EqualValues(t, 20, page["limit"])
}

func TestProviders_CrearSinToken_Retorna401(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodPost, "/api/providers", "", newProvider("12345678901", "a@b.com"))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decode(t, resp)["code"])
}

func TestProviders_SinPermiso_Retorna403(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodPost, "/api/providers", env.tokenFor(t, "vendedor"),
		newProvider("12345678901", "a@b.com"))

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "ACCESS_DENIED", body["code"])
	assert.Contains(t, body["message"], "POST /api/providers", "el error debe nombrar la acción denegada")
}

func TestPolitica_MayusculasEnLaRutaNoEvitanElControl(t *testing.T) {
	env := buildTestApp(t)
	vendedor := env.tokenFor(t, "vendedor")

	resp := env.doRequest(t, http.MethodPost, "/API/USERS", vendedor, map[string]any{
		"name": "Intruso", "username": "intruso", "password": "clave-intrusa-1",
		"email": "intruso@x.com", "roles": []string{entity.RoleAdmin},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", decode(t, resp)["code"])
	u, err := env.users.GetByUsername(context.Background(), "intruso")
	require.NoError(t, err)
	assert.Nil(t, u, "el usuario no debe crearse")

	resp = env.doRequest(t, http.MethodPost, "/api/Providers/", vendedor, newProvider("12345678901", "a@b.com"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.doRequest(t, http.MethodGet, "/Api/Sales", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.doRequest(t, http.MethodGet, "/API/PRODUCTS", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProviders_PermisoEspecificoPermiteCrear(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodPost, "/api/providers", env.tokenFor(t, "compras"),
		newProvider("12345678901", "a@b.com"))

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	id := body["data"].(map[string]any)["id"].(string)
	assert.Equal(t, "/api/providers/"+id, resp.Header.Get("Location"))
}

func TestProviders_RUCDuplicado_Retorna409(t *testing.T) {
	env := buildTestApp(t)
	admin := env.tokenFor(t, "admin")

	first := env.doRequest(t, http.MethodPost, "/api/providers", admin, newProvider("12345678901", "uno@b.com"))
	require.Equal(t, http.StatusCreated, first.StatusCode)

	resp := env.doRequest(t, http.MethodPost, "/api/providers", admin, newProvider("12345678901", "dos@b.com"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "PROVIDER_ALREADY_EXISTS", body["code"])
	assert.Equal(t, []any{"RUC"}, body["errors"])
	assert.Contains(t, body["message"], "RUC")
}

func TestProviders_ActualizarseASiMismoNoEsConflicto(t *testing.T) {
	env := buildTestApp(t)
	admin := env.tokenFor(t, "admin")

	created := decode(t, env.doRequest(t, http.MethodPost, "/api/providers", admin, newProvider("12345678901", "uno@b.com")))
	id := created["data"].(map[string]any)["id"].(string)

	resp := env.doRequest(t, http.MethodPut, "/api/providers/"+id, admin,
		map[string]any{"ruc": "12345678901", "name": "Distribuidora Sur"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recursos
// ──────────────────────────────────────────────────────────────────────────────

func TestCategories_CrearYEliminar(t *testing.T) {
	env := buildTestApp(t)
	admin := env.tokenFor(t, "admin")

	created := env.doRequest(t, http.MethodPost, "/api/categories", admin, map[string]any{"name": "Bebidas"})
	require.Equal(t, http.StatusCreated, created.StatusCode)
	id := decode(t, created)["data"].(map[string]any)["id"].(string)

	dup := env.doRequest(t, http.MethodPost, "/api/categories", admin, map[string]any{"name": "bebidas"})
	assert.Equal(t, http.StatusConflict, dup.StatusCode)

	del := env.doRequest(t, http.MethodDelete, "/api/categories/"+id, admin, nil)
	assert.Equal(t, http.StatusNoContent, del.StatusCode)
	raw, _ := io.ReadAll(del.Body)
	assert.Empty(t, raw, "204 no lleva cuerpo")

	again := env.doRequest(t, http.MethodGet, "/api/categories/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
	assert.Equal(t, "CATEGORY_NOT_FOUND", decode(t, again)["code"])
}

func TestCategories_IDInvalido_Retorna400(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodGet, "/api/categories/no-es-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decode(t, resp)["code"])
}

func TestProducts_RangoDePrecioInvalido_Retorna400(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodGet, "/api/products?min_price=10&max_price=5", "", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_PRICE_RANGE", decode(t, resp)["code"])
}

func TestFiltrosPorID_ValorInvalido_Retorna400(t *testing.T) {
	env := buildTestApp(t)
	admin := env.tokenFor(t, "admin")

	for _, c := range []struct{ path, auth, param string }{
		{"/api/products?category_id=abc", "", "category_id"},
		{"/api/products?brand_id=1", "", "brand_id"},
		{"/api/products?provider_id=x", "", "provider_id"},
		{"/api/sales?user_id=abc", admin, "user_id"},
		{"/api/stocktaking?product_id=abc", admin, "product_id"},
		{"/api/stocktaking/export?product_id=abc", admin, "product_id"},
	} {
		resp := env.doRequest(t, http.MethodGet, c.path, c.auth, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, c.path)
		body := decode(t, resp)
		assert.Equal(t, "INVALID_QUERY", body["code"], c.path)
		assert.Contains(t, body["message"], c.param, c.path)
	}

	resp := env.doRequest(t, http.MethodGet, "/api/products?category_id=3f0c5b1e-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSales_RangoDeFechasInvalido_Retorna400(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodGet, "/api/sales?from=2026-03-10&to=2026-03-01", env.tokenFor(t, "admin"), nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_DATE_RANGE", decode(t, resp)["code"])
}

func TestSales_ReporteEnPDF(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodGet, "/api/sales/report", env.tokenFor(t, "admin"), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestStocktaking_ExportIncluyeDigest(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodGet, "/api/stocktaking/export", env.tokenFor(t, "admin"), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SHA-256=dGVzdA==", resp.Header.Get("Digest"))
}

func TestUsers_SoloAdmin(t *testing.T) {
	env := buildTestApp(t)

	denied := env.doRequest(t, http.MethodGet, "/api/users", env.tokenFor(t, "compras"), nil)
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)

	ok := env.doRequest(t, http.MethodGet, "/api/users", env.tokenFor(t, "admin"), nil)
	assert.Equal(t, http.StatusOK, ok.StatusCode)
	page := decode(t, ok)["data"].(map[string]any)["page"].(map[string]any)
	assert.EqualValues(t, 3, page["total"])
}

func TestRoles_PermisosInexistentes_Retorna404(t *testing.T) {
	env := buildTestApp(t)
	resp := env.doRequest(t, http.MethodPost, "/api/roles", env.tokenFor(t, "admin"),
		map[string]any{"name": "auditor", "permissions": []string{"NO_EXISTE"}})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PERMISSIONS_NOT_FOUND", decode(t, resp)["code"])
}
