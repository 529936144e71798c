package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/application/inventory"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	domaininv "github.com/jofra02/proyecto-ventas/internal/domain/inventory"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
	"github.com/jofra02/proyecto-ventas/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	repos := store.Repos()
	ctx := context.Background()
	now := time.Now()
	minLevel := decimal.NewFromInt(3)
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "leche", SKU: "LEC-1", Name: "Leche", Price: decimal.NewFromInt(10), IsBatchTracked: true, TrackExpiry: true, CreatedAt: now}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "arroz", SKU: "ARR-1", Name: "Arroz", Price: decimal.NewFromInt(5), MinStockLevel: &minLevel, CreatedAt: now}))
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: "w1", Name: "Central", IsDefault: true, CreatedAt: now}))
	require.NoError(t, repos.Suppliers.Create(ctx, &entity.Supplier{ID: "s1", Name: "Lácteos SA", CreatedAt: now}))
	require.NoError(t, repos.Suppliers.Create(ctx, &entity.Supplier{ID: "s2", Name: "Granos SRL", CreatedAt: now}))
	return store
}

func TestReceiveStock_BatchTrackedCreatesBatch(t *testing.T) {
	store := newStore(t)
	uc := inventory.NewReceiveUseCase(store)
	ctx := context.Background()
	expiry := time.Now().Add(5 * 24 * time.Hour)

	res, err := uc.ReceiveStock(ctx, dto.ReceiveStockRequest{
		ProductID: "leche", WarehouseID: "w1", SupplierID: "s1", Quantity: decimal.NewFromInt(12), ExpiryDate: &expiry,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.BatchID)

	batch, err := store.Repos().Batches.GetByID(ctx, res.BatchID)
	require.NoError(t, err)
	require.NotNil(t, batch)
	assert.Equal(t, "LEC-1", batch.SKU)

	movs, err := store.Repos().Movements.List(ctx, repository.MovementFilter{BatchID: res.BatchID})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.Equal(t, "s1", movs[0].SupplierID)
}

func TestReceiveStock_PlainProductHasNoBatch(t *testing.T) {
	store := newStore(t)
	uc := inventory.NewReceiveUseCase(store)

	res, err := uc.ReceiveStock(context.Background(), dto.ReceiveStockRequest{ProductID: "arroz", WarehouseID: "w1", Quantity: decimal.NewFromInt(4)})
	require.NoError(t, err)
	assert.Empty(t, res.BatchID)
}

func TestReceiveStock_Errors(t *testing.T) {
	store := newStore(t)
	uc := inventory.NewReceiveUseCase(store)
	ctx := context.Background()

	_, err := uc.ReceiveStock(ctx, dto.ReceiveStockRequest{ProductID: "arroz", WarehouseID: "w1", Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ReceiveStock(ctx, dto.ReceiveStockRequest{ProductID: "nope", WarehouseID: "w1", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ReceiveStock(ctx, dto.ReceiveStockRequest{ProductID: "arroz", WarehouseID: "nope", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ReceiveStock(ctx, dto.ReceiveStockRequest{ProductID: "arroz", WarehouseID: "w1", SupplierID: "nope", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	movs, err := store.Repos().Movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestReceiveStockBatch_SkipsUnknownProductsAndUsesDefaultSupplier(t *testing.T) {
	store := newStore(t)
	uc := inventory.NewReceiveUseCase(store)
	ctx := context.Background()

	res, err := uc.ReceiveStockBatch(ctx, dto.ReceiveBatchRequest{
		WarehouseID: "w1",
		SupplierID:  "s2",
		Items: []dto.ReceiveBatchItem{
			{ProductID: "arroz", Quantity: decimal.NewFromInt(10)},
			{ProductID: "fantasma", Quantity: decimal.NewFromInt(1)},
			{ProductID: "leche", Quantity: decimal.NewFromInt(6), SupplierID: "s1"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)

	arroz, err := store.Repos().Movements.List(ctx, repository.MovementFilter{ProductID: "arroz"})
	require.NoError(t, err)
	require.Len(t, arroz, 1)
	assert.Equal(t, "s2", arroz[0].SupplierID)

	leche, err := store.Repos().Movements.List(ctx, repository.MovementFilter{ProductID: "leche"})
	require.NoError(t, err)
	require.Len(t, leche, 1)
	assert.Equal(t, "s1", leche[0].SupplierID)
}

func TestReceiveStockBatch_UnknownSupplierRollsBack(t *testing.T) {
	store := newStore(t)
	uc := inventory.NewReceiveUseCase(store)
	ctx := context.Background()

	_, err := uc.ReceiveStockBatch(ctx, dto.ReceiveBatchRequest{
		WarehouseID: "w1",
		Items: []dto.ReceiveBatchItem{
			{ProductID: "arroz", Quantity: decimal.NewFromInt(10)},
			{ProductID: "leche", Quantity: decimal.NewFromInt(6), SupplierID: "nope"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	movs, err := store.Repos().Movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs, "la recepción es todo o nada")
}

func TestAdjustStock(t *testing.T) {
	store := newStore(t)
	uc := inventory.NewReceiveUseCase(store)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, dto.AdjustStockRequest{ProductID: "arroz", WarehouseID: "w1", Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AdjustStock(ctx, dto.AdjustStockRequest{ProductID: "arroz", WarehouseID: "w1", Quantity: decimal.NewFromInt(-2), Reason: "rotura"})
	require.NoError(t, err)

	movs, err := store.Repos().Movements.List(ctx, repository.MovementFilter{ProductID: "arroz"})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeADJUST, movs[0].Type)
	assert.Equal(t, "rotura", movs[0].Reference)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(-2)))
}

func TestStockQuery_LevelsAndLowStock(t *testing.T) {
	store := newStore(t)
	repos := store.Repos()
	recv := inventory.NewReceiveUseCase(store)
	ctx := context.Background()

	_, err := recv.ReceiveStock(ctx, dto.ReceiveStockRequest{ProductID: "arroz", WarehouseID: "w1", Quantity: decimal.NewFromInt(5)})
	require.NoError(t, err)
	// reserva de 3 unidades: sólo la proyección available la descuenta
	require.NoError(t, repos.Movements.Append(ctx, &entity.StockMovement{
		ID: "r1", ProductID: "arroz", WarehouseID: "w1", Quantity: decimal.NewFromInt(3), Type: entity.MovementTypeRESERVE, CreatedAt: time.Now(),
	}))

	onHand := inventory.NewStockQueryUseCase(repos.Movements, repos.Batches, repos.Products, repos.Suppliers, domaininv.ProjectionOnHand)
	levels, err := onHand.StockLevels(ctx)
	require.NoError(t, err)
	assert.Equal(t, "on_hand", levels.Projection)
	got := map[string]decimal.Decimal{}
	for _, l := range levels.Items {
		got[l.ProductID] = l.Quantity
	}
	assert.True(t, got["arroz"].Equal(decimal.NewFromInt(5)))
	assert.True(t, got["leche"].IsZero())

	alerts, err := onHand.LowStockAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1, "arroz 5 > umbral 3; leche 0 <= umbral 10")
	assert.Equal(t, "leche", alerts[0].ProductID)
	assert.True(t, alerts[0].Threshold.Equal(entity.DefaultMinStockLevel))

	available := inventory.NewStockQueryUseCase(repos.Movements, repos.Batches, repos.Products, repos.Suppliers, domaininv.ProjectionAvailable)
	alerts, err = available.LowStockAlerts(ctx)
	require.NoError(t, err)
	assert.Len(t, alerts, 2, "con la reserva arroz queda en 2 <= 3")
}

func TestStockQuery_DetailsBySupplier(t *testing.T) {
	store := newStore(t)
	repos := store.Repos()
	recv := inventory.NewReceiveUseCase(store)
	ctx := context.Background()
	expiry := time.Now().Add(60 * 24 * time.Hour)

	_, err := recv.ReceiveStock(ctx, dto.ReceiveStockRequest{ProductID: "leche", WarehouseID: "w1", SupplierID: "s1", Quantity: decimal.NewFromInt(8), ExpiryDate: &expiry})
	require.NoError(t, err)
	_, err = recv.ReceiveStock(ctx, dto.ReceiveStockRequest{ProductID: "leche", WarehouseID: "w1", Quantity: decimal.NewFromInt(2)})
	require.NoError(t, err)

	uc := inventory.NewStockQueryUseCase(repos.Movements, repos.Batches, repos.Products, repos.Suppliers, domaininv.ProjectionOnHand)
	details, err := uc.StockDetailsByProduct(ctx, "leche")
	require.NoError(t, err)
	assert.True(t, details.Total.Equal(decimal.NewFromInt(10)))

	bySupplier := map[string]dto.SupplierStockDTO{}
	for _, s := range details.Suppliers {
		bySupplier[s.Supplier] = s
	}
	require.Contains(t, bySupplier, "Lácteos SA")
	require.Contains(t, bySupplier, domaininv.UnknownSupplierLabel)
	assert.True(t, bySupplier["Lácteos SA"].Quantity.Equal(decimal.NewFromInt(8)))
	require.Len(t, bySupplier["Lácteos SA"].Batches, 1)
	assert.Equal(t, "LEC-1", bySupplier["Lácteos SA"].Batches[0].SKU)

	_, err = uc.StockDetailsByProduct(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockQuery_ExpiringBatches(t *testing.T) {
	store := newStore(t)
	repos := store.Repos()
	recv := inventory.NewReceiveUseCase(store)
	ctx := context.Background()
	soon := time.Now().Add(3 * 24 * time.Hour)
	late := time.Now().Add(90 * 24 * time.Hour)

	_, err := recv.ReceiveStock(ctx, dto.ReceiveStockRequest{ProductID: "leche", WarehouseID: "w1", Quantity: decimal.NewFromInt(4), ExpiryDate: &soon})
	require.NoError(t, err)
	_, err = recv.ReceiveStock(ctx, dto.ReceiveStockRequest{ProductID: "leche", WarehouseID: "w1", Quantity: decimal.NewFromInt(4), ExpiryDate: &late})
	require.NoError(t, err)

	uc := inventory.NewStockQueryUseCase(repos.Movements, repos.Batches, repos.Products, repos.Suppliers, domaininv.ProjectionOnHand)
	list, err := uc.ExpiringBatches(ctx, inventory.DefaultExpiryDays)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Leche", list[0].ProductName)
	assert.False(t, list[0].Expired)
	assert.True(t, list[0].Quantity.Equal(decimal.NewFromInt(4)))

	_, err = uc.ExpiringBatches(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
