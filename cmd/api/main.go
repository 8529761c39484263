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

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/analytics"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/auth"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/inventory"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/sales"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/usecase"
	infrapdf "github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/infrastructure/pdf"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/infrastructure/postgres"
	infraxlsx "github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/infrastructure/xlsx"
	httpRouter "github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/interfaces/http"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/pkg/config"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := cfg.Report.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de reportes")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		n, err := postgres.Migrate(ctx, pool, postgres.MigrateUp, 0)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Int("applied", n).Msg("migraciones aplicadas")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, warehouseRepo)
	listMovementsUC := inventory.NewListMovementsUseCase(movementRepo)
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, warehouseRepo, clientRepo, loc)

	reporter := analytics.NewReporter(reportRepo, warehouseRepo, userRepo, companyRepo, log.Component("analytics"), loc)
	exporter := analytics.NewExporter(reporter, map[string]analytics.Renderer{
		analytics.FormatPDF:  infrapdf.NewReportRenderer(),
		analytics.FormatXLSX: infraxlsx.NewReportRenderer(),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // exportaciones PDF/XLSX
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http"), cfg.App.IsProduction()),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestion de stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		h, err := postgres.Health(c.UserContext(), pool)
		if err != nil {
			log.Warn().Err(err).Msg("health")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"service": cfg.App.Name, "db": h})
		}
		return c.JSON(fiber.Map{"service": cfg.App.Name, "db": h})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		CompanyUC:        usecase.NewCompanyUseCase(companyRepo),
		UserUC:           usecase.NewUserUseCase(userRepo),
		WarehouseUC:      usecase.NewWarehouseUseCase(warehouseRepo),
		ProductUC:        usecase.NewProductUseCase(productRepo, stockRepo, warehouseRepo, categoryRepo, supplierRepo, txRunner),
		CategoryUC:       usecase.NewCategoryUseCase(categoryRepo),
		SupplierUC:       usecase.NewSupplierUseCase(supplierRepo),
		ClientUC:         usecase.NewClientUseCase(clientRepo),
		RegisterMovement: registerMovementUC,
		ListMovements:    listMovementsUC,
		SaleUC:           saleUC,
		Reporter:         reporter,
		Exporter:         exporter,
		RateLimiter: httpRouter.NewTenantRateLimiter(httpRouter.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}),
		JWTSecret: cfg.JWT.Secret,
		Cookie: httpRouter.SessionCookie{
			Name:       cfg.JWT.CookieName,
			ExpMinutes: cfg.JWT.Expiration,
			Secure:     cfg.App.IsProduction(),
		},
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
