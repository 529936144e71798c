package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jofra02/proyecto-ventas/internal/application/analytics"
	"github.com/jofra02/proyecto-ventas/internal/application/billing"
	"github.com/jofra02/proyecto-ventas/internal/application/inventory"
	"github.com/jofra02/proyecto-ventas/internal/application/payments"
	"github.com/jofra02/proyecto-ventas/internal/application/picking"
	"github.com/jofra02/proyecto-ventas/internal/application/receivable"
	"github.com/jofra02/proyecto-ventas/internal/application/sales"
	"github.com/jofra02/proyecto-ventas/internal/application/usecase"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/pkg/logger"
)

// AppConfig opciones de la instancia Fiber.
type AppConfig struct {
	Name           string
	SwaggerEnabled bool
	SwaggerFile    string // default ./docs/swagger.json
}

// NewApp construye la app Fiber con recover, log de peticiones y /health.
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		Immutable:    true, // los ids de c.Params llegan a los repositorios
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.SwaggerEnabled {
		file := cfg.SwaggerFile
		if file == "" {
			file = "./docs/swagger.json"
		}
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: file,
			Path:     "docs",
			Title:    "Proyecto Ventas API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	SupplierUC    *usecase.SupplierUseCase
	CustomerUC    *usecase.CustomerUseCase
	ModuleService *usecase.ModuleService
	ReceiveUC     *inventory.ReceiveUseCase
	StockQueryUC  *inventory.StockQueryUseCase
	SaleUC        *sales.SaleUseCase
	DocumentUC    *billing.DocumentUseCase
	PickingUC     *picking.PickingUseCase
	Accounts      *receivable.AccountService
	PaymentUC     *payments.PaymentUseCase
	AnalyticsUC   *analytics.SalesAnalyticsUseCase
	Logger        *logger.Logger
	JWTSecret     string
	JWTIssuer     string
}

// Roles por tipo de operación.
var (
	rolesAll     = []string{entity.RoleAdmin, entity.RoleSupervisor, entity.RoleEmployee}
	rolesManager = []string{entity.RoleAdmin, entity.RoleSupervisor}
)

// Router registra las rutas de la API. Todas requieren Bearer Token.
// Módulo y rol se encadenan por ruta: el middleware de un Group se aplica por prefijo
// y alcanzaría a rutas de otros grupos.
func Router(app *fiber.App, deps RouterDeps) {
	r := newResponder(deps.Logger)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	anyRole := RequireRole(rolesAll...)
	manager := RequireRole(rolesManager...)
	module := func(name string) fiber.Handler { return RequireModule(name, deps.ModuleService) }

	// Catálogo
	catalog := module(usecase.ModuleCatalog)
	productHandler := NewProductHandler(r, deps.ProductUC)
	api.Post("/products", catalog, manager, productHandler.Create)
	api.Get("/products", catalog, anyRole, productHandler.List)
	api.Get("/products/:id", catalog, anyRole, productHandler.GetByID)
	api.Post("/products/:id/barcodes", catalog, manager, productHandler.AddBarcode)

	warehouseHandler := NewWarehouseHandler(r, deps.WarehouseUC)
	api.Post("/warehouses", catalog, manager, warehouseHandler.Create)
	api.Get("/warehouses", catalog, anyRole, warehouseHandler.List)

	supplierHandler := NewSupplierHandler(r, deps.SupplierUC)
	api.Post("/suppliers", catalog, manager, supplierHandler.Create)
	api.Get("/suppliers", catalog, anyRole, supplierHandler.List)

	customerHandler := NewCustomerHandler(r, deps.CustomerUC)
	api.Post("/customers", catalog, anyRole, customerHandler.Create)
	api.Get("/customers", catalog, anyRole, customerHandler.List)

	// Inventario
	inv := module(usecase.ModuleInventory)
	inventoryHandler := NewInventoryHandler(r, deps.ReceiveUC, deps.StockQueryUC)
	api.Post("/inventory/receive", inv, manager, inventoryHandler.Receive)
	api.Post("/inventory/receive-batch", inv, manager, inventoryHandler.ReceiveBatch)
	api.Post("/inventory/adjust", inv, manager, inventoryHandler.Adjust)
	api.Get("/inventory/stock", inv, anyRole, inventoryHandler.StockLevels)
	api.Get("/inventory/stock/:product_id/details", inv, anyRole, inventoryHandler.StockDetails)
	api.Get("/inventory/alerts/low-stock", inv, anyRole, inventoryHandler.LowStock)
	api.Get("/inventory/alerts/expiring", inv, anyRole, inventoryHandler.Expiring)

	// Analítica (antes de /sales/:id)
	an := module(usecase.ModuleAnalytics)
	analyticsHandler := NewAnalyticsHandler(r, deps.AnalyticsUC)
	api.Get("/sales/analytics/trend", an, manager, analyticsHandler.Trend)
	api.Get("/sales/analytics/summary", an, manager, analyticsHandler.Summary)
	api.Get("/sales/analytics/top-products", an, manager, analyticsHandler.TopProducts)

	// Ventas
	sl := module(usecase.ModuleSales)
	salesHandler := NewSalesHandler(r, deps.SaleUC)
	api.Post("/sales", sl, anyRole, salesHandler.Create)
	api.Get("/sales", sl, anyRole, salesHandler.List)
	api.Get("/sales/:id", sl, anyRole, salesHandler.GetByID)
	api.Post("/sales/:id/confirm", sl, anyRole, salesHandler.Confirm)

	// Documentos
	docs := module(usecase.ModuleInvoicing)
	documentHandler := NewDocumentHandler(r, deps.DocumentUC)
	api.Post("/documents/issue", docs, manager, documentHandler.Issue)
	api.Get("/documents", docs, anyRole, documentHandler.List)
	api.Get("/documents/:id", docs, anyRole, documentHandler.GetByID)

	// Picking
	pk := module(usecase.ModulePicking)
	pickingHandler := NewPickingHandler(r, deps.PickingUC)
	api.Post("/picking/tasks", pk, anyRole, pickingHandler.CreateTask)
	api.Get("/picking/tasks/:id", pk, anyRole, pickingHandler.GetTask)
	api.Post("/picking/tasks/:id/complete", pk, anyRole, pickingHandler.Complete)
	api.Post("/picking/scan", pk, anyRole, pickingHandler.Scan)

	// Cuenta corriente y cobros
	receivableHandler := NewReceivableHandler(r, deps.Accounts, deps.PaymentUC)
	ar := module(usecase.ModuleAccountsReceivable)
	api.Get("/accounts-receivable/:customer_id/ledger", ar, anyRole, receivableHandler.Ledger)
	api.Get("/accounts-receivable/:customer_id/balance", ar, anyRole, receivableHandler.Balance)

	pay := module(usecase.ModulePayments)
	api.Post("/payments", pay, manager, receivableHandler.CreatePayment)
	api.Get("/payments", pay, anyRole, receivableHandler.ListPayments)
}
