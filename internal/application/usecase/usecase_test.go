package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/domain/repository/repotest"
	"github.com/jhoicas/stock-api/internal/domain/security"
)

const (
	catID  = "11111111-1111-1111-1111-111111111111"
	brID   = "22222222-2222-2222-2222-222222222222"
	provID = "33333333-3333-3333-3333-333333333333"
)

type catalog struct {
	categories *repotest.Categories
	brands     *repotest.Brands
	providers  *repotest.Providers
	products   *repotest.Products
}

func newCatalog(t *testing.T) catalog {
	t.Helper()
	ctx := context.Background()
	c := catalog{&repotest.Categories{}, &repotest.Brands{}, &repotest.Providers{}, &repotest.Products{}}
	require.NoError(t, c.categories.Create(ctx, &entity.Category{ID: catID, Name: "Bebidas", Active: true}))
	require.NoError(t, c.brands.Create(ctx, &entity.Brand{ID: brID, Name: "Acme", Active: true}))
	require.NoError(t, c.providers.Create(ctx, &entity.Provider{ID: provID, Name: "Distribuidora", RUC: "20111111111", Active: true}))
	return c
}

func (c catalog) productUC() *usecase.ProductUseCase {
	return usecase.NewProductUseCase(c.products, c.categories, c.brands, c.providers)
}

func principalCtx(userID string) context.Context {
	return security.WithPrincipal(context.Background(), &security.Principal{UserID: userID, Username: "vendedor"})
}

// ── Productos ─────────────────────────────────────────────────────────────────

func TestProduct_CreateReferenciaInexistente(t *testing.T) {
	uc := newCatalog(t).productUC()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Agua", Price: decimal.NewFromInt(2),
		CategoryID: catID, BrandID: "99999999-9999-9999-9999-999999999999", ProviderID: provID,
	})
	assert.ErrorIs(t, err, domain.ErrBrandNotFound)
}

func TestProduct_ListRangoDePrecioInvalido(t *testing.T) {
	uc := newCatalog(t).productUC()
	minP, maxP := decimal.NewFromInt(10), decimal.NewFromInt(5)

	_, err := uc.List(context.Background(), repository.ProductFilter{MinPrice: &minP, MaxPrice: &maxP})
	assert.ErrorIs(t, err, domain.ErrInvalidPriceRange)
}

func TestProduct_CreateYFiltrarPorPrecio(t *testing.T) {
	uc := newCatalog(t).productUC()
	ctx := context.Background()
	for _, price := range []int64{3, 8, 15} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{
			Name: "P", Price: decimal.NewFromInt(price), CategoryID: catID, BrandID: brID, ProviderID: provID,
		})
		require.NoError(t, err)
	}
	minP, maxP := decimal.NewFromInt(5), decimal.NewFromInt(10)

	out, err := uc.List(ctx, repository.ProductFilter{MinPrice: &minP, MaxPrice: &maxP})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Price.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, 1, out.Page.Total)
	assert.Equal(t, 20, out.Page.Limit)
}

func TestProduct_GetInexistente(t *testing.T) {
	_, err := newCatalog(t).productUC().GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// ── Proveedores ───────────────────────────────────────────────────────────────

func TestProvider_CreateDuplicadoYUpdatePropio(t *testing.T) {
	uc := usecase.NewProviderUseCase(&repotest.Providers{})
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProviderRequest{Name: "A", RUC: "12345678901", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateProviderRequest{Name: "B", RUC: "12345678901", Email: "b@x.com"})
	assert.ErrorIs(t, err, domain.ErrProviderAlreadyExists)
	assert.Contains(t, err.Error(), "RUC")

	name := "A renombrado"
	out, err := uc.Update(ctx, created.ID, dto.UpdateProviderRequest{Name: &name})
	require.NoError(t, err, "el propio proveedor no colisiona consigo mismo")
	assert.Equal(t, name, out.Name)
}

// ── Categorías ────────────────────────────────────────────────────────────────

func TestCategory_NombreDuplicado(t *testing.T) {
	uc := usecase.NewCategoryUseCase(&repotest.Categories{})
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateCatalogRequest{Name: "Lácteos"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateCatalogRequest{Name: "lácteos"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = uc.Delete(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

// ── Ventas ────────────────────────────────────────────────────────────────────

func TestSale_CreateCalculaTotalYUsuario(t *testing.T) {
	c := newCatalog(t)
	ctx := principalCtx("u-7")
	require.NoError(t, c.products.Create(ctx, &entity.Product{ID: "prod-1", Name: "Café", Price: decimal.RequireFromString("4.50"), Active: true}))
	require.NoError(t, c.products.Create(ctx, &entity.Product{ID: "prod-2", Name: "Té", Price: decimal.RequireFromString("1.25"), Active: true}))
	uc := usecase.NewSaleUseCase(&repotest.Sales{}, c.products)

	out, err := uc.Create(ctx, dto.CreateSaleRequest{Items: []dto.SaleItemRequest{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-2", Quantity: 3},
	}})
	require.NoError(t, err)
	assert.Equal(t, "u-7", out.UserID)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("12.75")), out.Total.String())
	assert.True(t, out.Items[0].Subtotal.Equal(decimal.RequireFromString("9")))
}

func TestSale_ProductoInexistenteYSinPrincipal(t *testing.T) {
	uc := usecase.NewSaleUseCase(&repotest.Sales{}, &repotest.Products{})
	req := dto.CreateSaleRequest{Items: []dto.SaleItemRequest{{ProductID: "x", Quantity: 1}}}

	_, err := uc.Create(principalCtx("u-1"), req)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// ── Inventario físico ─────────────────────────────────────────────────────────

func TestStocktaking_DiferenciaContraStock(t *testing.T) {
	products := &repotest.Products{}
	ctx := principalCtx("u-1")
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "prod-1", Stock: 10, Active: true}))
	uc := usecase.NewStocktakingUseCase(&repotest.Stocktakings{}, products)

	out, err := uc.Create(ctx, dto.CreateStocktakingRequest{ProductID: "prod-1", CountedQuantity: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.SystemQuantity)
	assert.Equal(t, int64(-3), out.Difference)

	counted := int64(12)
	upd, err := uc.Update(ctx, out.ID, dto.UpdateStocktakingRequest{CountedQuantity: &counted})
	require.NoError(t, err)
	assert.Equal(t, int64(2), upd.Difference)
}

// ── Usuarios, roles y permisos ────────────────────────────────────────────────

func TestNormalizeNames(t *testing.T) {
	assert.Equal(t, "ROLE_ADMIN", usecase.NormalizeRoleName("admin"))
	assert.Equal(t, "ROLE_JEFE_DE_TIENDA", usecase.NormalizeRoleName(" jefe de-tienda "))
	assert.Equal(t, "ROLE_USER", usecase.NormalizeRoleName("role_user"))
	assert.Equal(t, "CREATE_PRODUCT", usecase.NormalizePermissionName("create product"))
}

func TestRole_PermisosNingunoExiste(t *testing.T) {
	uc := usecase.NewRoleUseCase(&repotest.Roles{}, &repotest.Permissions{})

	_, err := uc.Create(context.Background(), dto.CreateRoleRequest{Name: "cajero", Permissions: []string{"FOO_BAR"}})
	assert.ErrorIs(t, err, domain.ErrPermissionsNotFound)
}

func TestRole_CreateResuelvePermisosExistentes(t *testing.T) {
	perms := &repotest.Permissions{}
	require.NoError(t, perms.Create(context.Background(), &entity.Permission{ID: "p1", Name: "CREATE_SALE", Active: true}))
	uc := usecase.NewRoleUseCase(&repotest.Roles{}, perms)

	out, err := uc.Create(context.Background(), dto.CreateRoleRequest{
		Name:        "cajero",
		Permissions: []string{"create_sale", "NO_EXISTE"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ROLE_CAJERO", out.Name)
	require.Len(t, out.Permissions, 1)
	assert.Equal(t, "CREATE_SALE", out.Permissions[0].Name)

	_, err = uc.Create(context.Background(), dto.CreateRoleRequest{Name: "ROLE_CAJERO", Permissions: []string{"CREATE_SALE"}})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUser_RolDesconocidoYDesactivar(t *testing.T) {
	roles := &repotest.Roles{}
	require.NoError(t, roles.Create(context.Background(), &entity.Role{ID: "r1", Name: entity.RoleUser, Active: true}))
	users := &repotest.Users{}
	uc := usecase.NewUserUseCase(users, roles)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana", Username: "ana", Password: "password-1", Email: "a@x.com", Roles: []string{"ROLE_GHOST"}})
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)

	out, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana", Username: "ana", Password: "password-1", Email: "a@x.com", Roles: []string{"user"}})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleUser}, out.Roles)

	require.NoError(t, uc.Delete(ctx, out.ID))
	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.False(t, got.Active, "DELETE desactiva, no borra")
}
