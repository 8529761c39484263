package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/analytics"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/auth"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/inventory"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/sales"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/usecase"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	CompanyUC        *usecase.CompanyUseCase
	UserUC           *usecase.UserUseCase
	WarehouseUC      *usecase.WarehouseUseCase
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	SupplierUC       *usecase.SupplierUseCase
	ClientUC         *usecase.ClientUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ListMovements    *inventory.ListMovementsUseCase
	SaleUC           *sales.SaleUseCase
	Reporter         *analytics.Reporter
	Exporter         *analytics.Exporter
	RateLimiter      *TenantRateLimiter // nil desactiva el límite
	JWTSecret        string
	Cookie           SessionCookie
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (Bearer o cookie de sesión)
	mw := []fiber.Handler{AuthMiddleware(deps.JWTSecret, deps.Cookie.Name)}
	if deps.RateLimiter != nil {
		mw = append(mw, deps.RateLimiter.Middleware())
	}
	protected := api.Group("/", mw...)

	staff := RequireRole(entity.RoleAdmin, entity.RoleManager)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Tableros y reportes
	dash := NewDashboardHandler(deps.Reporter, deps.Exporter)
	protected.Get("/dashboard/overview", dash.Overview)
	protected.Get("/dashboard/summary", dash.Summary)
	protected.Get("/report", dash.Report)
	protected.Get("/report/export", dash.Export)

	// Empresa
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company", companyHandler.Get)
	protected.Put("/company", adminOnly, companyHandler.Update)

	// Usuarios (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Warehouses: lectura para todos, escritura admin/manager
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", staff, warehouseHandler.Create)
	warehouses.Put("/:id", staff, warehouseHandler.Update)
	warehouses.Delete("/:id", staff, warehouseHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", staff, productHandler.Create)
	products.Put("/:id", staff, productHandler.Update)
	products.Delete("/:id", staff, productHandler.Delete)

	// Catálogos
	NewCatalogHandler[dto.CategoryRequest, dto.CategoryResponse](deps.CategoryUC).Mount(protected.Group("/categories"))
	NewCatalogHandler[dto.SupplierRequest, dto.SupplierResponse](deps.SupplierUC).Mount(protected.Group("/suppliers"))
	NewCatalogHandler[dto.ClientRequest, dto.ClientResponse](deps.ClientUC).Mount(protected.Group("/clients"))

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Checkout)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.Get)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)

	// Movimientos de inventario
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.ListMovements)
	invGroup.Post("/movements", staff, inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
}
