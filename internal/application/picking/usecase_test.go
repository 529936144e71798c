package picking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/application/inventory"
	"github.com/jofra02/proyecto-ventas/internal/application/picking"
	"github.com/jofra02/proyecto-ventas/internal/application/sales"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
	"github.com/jofra02/proyecto-ventas/internal/infrastructure/memory"
	"github.com/jofra02/proyecto-ventas/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	sales   *sales.SaleUseCase
	picking *picking.PickingUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	repos := store.Repos()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", SKU: "CAF-1", Name: "Café", Price: decimal.NewFromInt(30), CreatedAt: now}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p2", SKU: "TE-1", Name: "Té", Price: decimal.NewFromInt(20), CreatedAt: now}))
	require.NoError(t, repos.Products.AddBarcode(ctx, &entity.ProductBarcode{ProductID: "p1", Barcode: "7790001"}))
	require.NoError(t, repos.Products.AddBarcode(ctx, &entity.ProductBarcode{ProductID: "p2", Barcode: "7790002"}))
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: "w1", Name: "Central", IsDefault: true, CreatedAt: now}))

	return &fixture{
		sales:   sales.NewSaleUseCase(store, repos.Sales, inventory.NewStockService(), nil, logger.Nop()),
		picking: picking.NewPickingUseCase(store, repos.PickTasks, repos.Sales, repos.Products),
	}
}

// confirmedSale venta confirmada de 2 unidades de café.
func (f *fixture) confirmedSale(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	sale, err := f.sales.CreateSale(ctx, dto.CreateSaleRequest{
		WarehouseID: "w1",
		Items:       []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
	_, err = f.sales.ConfirmSale(ctx, sale.ID)
	require.NoError(t, err)
	return sale.ID
}

func TestCreateTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	saleID := f.confirmedSale(t)

	task, err := f.picking.CreateTask(ctx, saleID)
	require.NoError(t, err)
	assert.Equal(t, entity.PickTaskStatusPending, task.Status)
	require.Len(t, task.Items, 1)
	assert.Equal(t, "Café", task.Items[0].ProductName)
	assert.Equal(t, 2, task.Items[0].RequiredQty)
	assert.Equal(t, 0, task.Items[0].ScannedQty)

	_, err = f.picking.CreateTask(ctx, saleID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.picking.CreateTask(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateTask_DraftSaleIsInvalidState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft, err := f.sales.CreateSale(ctx, dto.CreateSaleRequest{
		WarehouseID: "w1",
		Items:       []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	_, err = f.picking.CreateTask(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestScan_Outcomes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task, err := f.picking.CreateTask(ctx, f.confirmedSale(t))
	require.NoError(t, err)

	res, err := f.picking.Scan(ctx, dto.ScanRequest{TaskID: task.ID, Barcode: "000000"})
	require.NoError(t, err)
	assert.Equal(t, dto.ScanResultNotFound, res.Status)
	assert.Equal(t, entity.PickTaskStatusPending, res.TaskStatus, "una lectura fallida no inicia la tarea")

	res, err = f.picking.Scan(ctx, dto.ScanRequest{TaskID: task.ID, Barcode: "7790002"})
	require.NoError(t, err)
	assert.Equal(t, dto.ScanResultMismatch, res.Status)
	assert.Equal(t, "p2", res.ProductID)
	assert.Equal(t, 0, res.ScannedQty)

	res, err = f.picking.Scan(ctx, dto.ScanRequest{TaskID: task.ID, Barcode: "7790001"})
	require.NoError(t, err)
	assert.Equal(t, dto.ScanResultMatch, res.Status)
	assert.Equal(t, 1, res.ScannedQty)
	assert.Equal(t, 2, res.RequiredQty)
	assert.Equal(t, entity.PickTaskStatusInProgress, res.TaskStatus)

	res, err = f.picking.Scan(ctx, dto.ScanRequest{TaskID: task.ID, Barcode: "7790001"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.ScannedQty)

	// sobre-lectura: se registra y el conteo sigue creciendo
	res, err = f.picking.Scan(ctx, dto.ScanRequest{TaskID: task.ID, Barcode: "7790001"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.ScannedQty)
	assert.Equal(t, entity.PickTaskStatusInProgress, res.TaskStatus, "nunca se completa sola")

	got, err := f.picking.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].ScannedQty)

	_, err = f.picking.Scan(ctx, dto.ScanRequest{TaskID: "nope", Barcode: "7790001"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompleteTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task, err := f.picking.CreateTask(ctx, f.confirmedSale(t))
	require.NoError(t, err)

	_, err = f.picking.CompleteTask(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una tarea PENDING no se completa")

	_, err = f.picking.Scan(ctx, dto.ScanRequest{TaskID: task.ID, Barcode: "7790001"})
	require.NoError(t, err)

	done, err := f.picking.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PickTaskStatusCompleted, done.Status)

	_, err = f.picking.CompleteTask(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.picking.GetTask(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type brokenProducts struct {
	repository.ProductRepository
}

func (brokenProducts) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, errors.New("conexión perdida")
}

func TestGetTask_ProductLookupErrorIsReturned(t *testing.T) {
	store := memory.New()
	repos := store.Repos()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", SKU: "CAF-1", Name: "Café", Price: decimal.NewFromInt(30), CreatedAt: now}))
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: "w1", Name: "Central", IsDefault: true, CreatedAt: now}))

	saleUC := sales.NewSaleUseCase(store, repos.Sales, inventory.NewStockService(), nil, logger.Nop())
	sale, err := saleUC.CreateSale(ctx, dto.CreateSaleRequest{
		WarehouseID: "w1",
		Items:       []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	_, err = saleUC.ConfirmSale(ctx, sale.ID)
	require.NoError(t, err)

	task, err := picking.NewPickingUseCase(store, repos.PickTasks, repos.Sales, repos.Products).CreateTask(ctx, sale.ID)
	require.NoError(t, err)

	uc := picking.NewPickingUseCase(store, repos.PickTasks, repos.Sales, brokenProducts{repos.Products})
	_, err = uc.GetTask(ctx, task.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión perdida")
}
