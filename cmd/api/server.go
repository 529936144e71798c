package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jofra02/proyecto-ventas/internal/application/analytics"
	"github.com/jofra02/proyecto-ventas/internal/application/billing"
	"github.com/jofra02/proyecto-ventas/internal/application/inventory"
	"github.com/jofra02/proyecto-ventas/internal/application/payments"
	"github.com/jofra02/proyecto-ventas/internal/application/picking"
	"github.com/jofra02/proyecto-ventas/internal/application/ports"
	"github.com/jofra02/proyecto-ventas/internal/application/receivable"
	"github.com/jofra02/proyecto-ventas/internal/application/sales"
	"github.com/jofra02/proyecto-ventas/internal/application/usecase"
	domaininv "github.com/jofra02/proyecto-ventas/internal/domain/inventory"
	httpRouter "github.com/jofra02/proyecto-ventas/internal/interfaces/http"
	"github.com/jofra02/proyecto-ventas/pkg/config"
	"github.com/jofra02/proyecto-ventas/pkg/logger"
)

// newServer arma casos de uso y rutas sobre el backend elegido.
func newServer(cfg *config.Config, log *logger.Logger, store storage) (*fiber.App, error) {
	projection, err := domaininv.ParseProjection(cfg.Inventory.StockProjection)
	if err != nil {
		return nil, fmt.Errorf("STOCK_PROJECTION: %w", err)
	}
	moduleSvc, err := usecase.NewModuleService(cfg.App.Modules)
	if err != nil {
		return nil, fmt.Errorf("APP_MODULES: %w", err)
	}

	// Interfaces nil explícitas: un *AnalyticsCache nil dentro de la interfaz no sería nil.
	var (
		invalidator    ports.AnalyticsInvalidator
		analyticsCache appanalytics.Cache
	)
	if store.cache != nil {
		invalidator, analyticsCache = store.cache, store.cache
	}

	repos := store.repos
	stockSvc := inventory.NewStockService()
	accounts := receivable.NewAccountService(repos.Ledger, repos.Customers)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:           cfg.App.Name,
		SwaggerEnabled: cfg.App.SwaggerEnabled,
	}, log)

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(store.tx, repos.Products),
		WarehouseUC:   usecase.NewWarehouseUseCase(repos.Warehouses),
		SupplierUC:    usecase.NewSupplierUseCase(repos.Suppliers),
		CustomerUC:    usecase.NewCustomerUseCase(repos.Customers),
		ModuleService: moduleSvc,
		ReceiveUC:     inventory.NewReceiveUseCase(store.tx),
		StockQueryUC:  inventory.NewStockQueryUseCase(repos.Movements, repos.Batches, repos.Products, repos.Suppliers, projection),
		SaleUC:        sales.NewSaleUseCase(store.tx, repos.Sales, stockSvc, invalidator, log.Named("sales")),
		DocumentUC:    billing.NewDocumentUseCase(store.tx, repos.Sales, repos.Documents, stockSvc, accounts, invalidator, log.Named("billing")),
		PickingUC:     picking.NewPickingUseCase(store.tx, repos.PickTasks, repos.Sales, repos.Products),
		Accounts:      accounts,
		PaymentUC:     payments.NewPaymentUseCase(store.tx, repos.Payments, accounts),
		AnalyticsUC:   appanalytics.NewSalesAnalyticsUseCase(store.analytics, analyticsCache, cfg.Analytics.TZOffset),
		Logger:        log,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
	})

	log.Info().Strs("modules", moduleSvc.Active()).Str("projection", string(projection)).Msg("rutas registradas")
	return app, nil
}
