package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/auth"
	"github.com/jhoicas/stock-api/internal/application/report"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CategoryUC    *usecase.CategoryUseCase
	BrandUC       *usecase.BrandUseCase
	ProviderUC    *usecase.ProviderUseCase
	ProductUC     *usecase.ProductUseCase
	SaleUC        *usecase.SaleUseCase
	StocktakingUC *usecase.StocktakingUseCase
	UserUC        *usecase.UserUseCase
	RoleUC        *usecase.RoleUseCase
	PermissionUC  *usecase.PermissionUseCase
	ReportUC      *report.ReportUseCase
	Tokens        TokenDecoder
	Logger        *logger.Logger
	Policy        *Policy // nil → DefaultPolicy()
}

// Router registra las rutas de la API. Toda petición bajo /api pasa por
// RequestLogger → AuthFilter → Policy antes de llegar al handler.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	policy := deps.Policy
	if policy == nil {
		policy = DefaultPolicy()
	}

	api := app.Group("/api",
		RequestLogger(log),
		AuthFilter(deps.Tokens, deps.AuthUC),
		policy.Middleware(),
	)

	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Get("/me", authHandler.Me)

	crud(api.Group("/categories"), NewCategoryHandler(deps.CategoryUC))
	crud(api.Group("/brands"), NewBrandHandler(deps.BrandUC))
	crud(api.Group("/providers"), NewProviderHandler(deps.ProviderUC))
	crud(api.Group("/products"), NewProductHandler(deps.ProductUC))

	// Rutas fijas antes de /:id.
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReportUC)
	sales := api.Group("/sales")
	sales.Get("/report", saleHandler.Report)
	crud(sales, saleHandler)

	stocktakingHandler := NewStocktakingHandler(deps.StocktakingUC, deps.ReportUC)
	stocktaking := api.Group("/stocktaking")
	stocktaking.Get("/export", stocktakingHandler.Export)
	crud(stocktaking, stocktakingHandler)

	crud(api.Group("/users"), NewUserHandler(deps.UserUC))
	crud(api.Group("/roles"), NewRoleHandler(deps.RoleUC))
	crud(api.Group("/permissions"), NewPermissionHandler(deps.PermissionUC))
}

type crudHandler interface {
	Create(c *fiber.Ctx) error
	GetByID(c *fiber.Ctx) error
	List(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

func crud(r fiber.Router, h crudHandler) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.GetByID)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}
