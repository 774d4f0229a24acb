// @title        Stock API
// @version      1.0
// @description  Inventario: productos, catálogos, proveedores, ventas y conteos físicos.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/stock-api/docs"
	"github.com/jhoicas/stock-api/internal/application/auth"
	"github.com/jhoicas/stock-api/internal/application/report"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/stock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/stock-api/internal/interfaces/http"
	"github.com/jhoicas/stock-api/pkg/config"
	"github.com/jhoicas/stock-api/pkg/jwt"
	"github.com/jhoicas/stock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.UpMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	codec, err := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("codec de tokens")
	}

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	permissionRepo := postgres.NewPermissionRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	stocktakingRepo := postgres.NewStocktakingRepository(pool)

	// PDF de ventas (maroto) y XML de conteos (etree + C14N)
	reportUC := report.NewReportUseCase(
		saleRepo, stocktakingRepo, productRepo,
		infrapdf.NewSalesReportGenerator(cfg.App.Name),
		xmlexport.NewStocktakingExporter(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(userRepo, roleRepo, codec),
		CategoryUC:    usecase.NewCategoryUseCase(categoryRepo),
		BrandUC:       usecase.NewBrandUseCase(brandRepo),
		ProviderUC:    usecase.NewProviderUseCase(providerRepo),
		ProductUC:     usecase.NewProductUseCase(productRepo, categoryRepo, brandRepo, providerRepo),
		SaleUC:        usecase.NewSaleUseCase(saleRepo, productRepo),
		StocktakingUC: usecase.NewStocktakingUseCase(stocktakingRepo, productRepo),
		UserUC:        usecase.NewUserUseCase(userRepo, roleRepo),
		RoleUC:        usecase.NewRoleUseCase(roleRepo, permissionRepo),
		PermissionUC:  usecase.NewPermissionUseCase(permissionRepo),
		ReportUC:      reportUC,
		Tokens:        codec,
		Logger:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
