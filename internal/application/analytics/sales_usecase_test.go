package analytics_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/jofra02/proyecto-ventas/internal/application/analytics"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
	"github.com/jofra02/proyecto-ventas/internal/infrastructure/cache"
	"github.com/jofra02/proyecto-ventas/internal/infrastructure/memory"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	windowStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
)

// countingRepo cuenta las consultas que llegan al repositorio.
type countingRepo struct {
	repository.AnalyticsRepository
	lines atomic.Int32
	top   atomic.Int32
}

func (r *countingRepo) ConfirmedSaleLines(ctx context.Context, start, end time.Time) ([]repository.SaleLine, error) {
	r.lines.Add(1)
	return r.AnalyticsRepository.ConfirmedSaleLines(ctx, start, end)
}

func (r *countingRepo) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	r.top.Add(1)
	return r.AnalyticsRepository.TopProducts(ctx, start, end, limit)
}

func item(productID string, qty, price int64) entity.SaleItem {
	return entity.SaleItem{ProductID: productID, Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(price)}
}

// seededStore dos ventas confirmadas en la ventana (130 y 50), un borrador que no cuenta
// y una venta de 100 en el período anterior.
func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	repos := store.Repos()
	ctx := context.Background()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", SKU: "HAR-1", Name: "Harina", Price: decimal.NewFromInt(50)}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p2", SKU: "FID-1", Name: "Fideos", Price: decimal.NewFromInt(30)}))
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: "w1", Name: "Central"}))

	sales := []entity.Sale{
		{ID: "s1", Status: entity.SaleStatusConfirmed, WarehouseID: "w1", CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), Items: []entity.SaleItem{item("p1", 2, 50), item("p2", 1, 30)}},
		{ID: "s2", Status: entity.SaleStatusConfirmed, WarehouseID: "w1", CreatedAt: time.Date(2025, 3, 2, 15, 0, 0, 0, time.UTC), Items: []entity.SaleItem{item("p1", 1, 50)}},
		{ID: "s3", Status: entity.SaleStatusDraft, WarehouseID: "w1", CreatedAt: time.Date(2025, 3, 2, 16, 0, 0, 0, time.UTC), Items: []entity.SaleItem{item("p2", 9, 30)}},
		{ID: "s4", Status: entity.SaleStatusConfirmed, WarehouseID: "w1", CreatedAt: time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC), Items: []entity.SaleItem{item("p2", 1, 100)}},
	}
	for i := range sales {
		require.NoError(t, repos.Sales.Create(ctx, &sales[i]))
	}
	return store
}

func newCache(t *testing.T) *cache.AnalyticsCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewAnalyticsCache(client, time.Minute)
}

func ptr(t time.Time) *time.Time { return &t }

func TestSalesTrend_DailyWithOffset(t *testing.T) {
	uc := analytics.NewSalesAnalyticsUseCase(seededStore(t).Analytics(), nil, -3)

	trend, err := uc.SalesTrend(context.Background(), ptr(windowStart), ptr(windowEnd))
	require.NoError(t, err)
	assert.Equal(t, "DAILY", trend.Granularity)
	assert.Equal(t, -3, trend.TZOffset)
	require.Len(t, trend.Points, 3)
	assert.Equal(t, "2025-03-01", trend.Points[0].FullDate)
	assert.Equal(t, "01/03", trend.Points[0].Date)
	assert.True(t, trend.Points[0].Revenue.Equal(decimal.NewFromInt(130)))
	assert.True(t, trend.Points[1].Revenue.Equal(decimal.NewFromInt(50)))
	assert.True(t, trend.Points[2].Revenue.IsZero())
}

func TestSummary_ComparesWithPreviousPeriod(t *testing.T) {
	uc := analytics.NewSalesAnalyticsUseCase(seededStore(t).Analytics(), nil, 0)

	s, err := uc.Summary(context.Background(), ptr(windowStart), ptr(windowEnd))
	require.NoError(t, err)
	assert.True(t, s.TotalRevenue.Equal(decimal.NewFromInt(180)), "revenue %s", s.TotalRevenue)
	assert.Equal(t, 2, s.TotalOrders)
	assert.True(t, s.AvgOrderValue.Equal(decimal.NewFromInt(90)))
	assert.True(t, s.RevenueTrend.Equal(decimal.NewFromInt(80)), "revenue trend %s", s.RevenueTrend)
	assert.True(t, s.OrdersTrend.Equal(decimal.NewFromInt(100)))
	assert.True(t, s.AvgOrderValueTrend.Equal(decimal.NewFromInt(-10)))
}

func TestTopProducts(t *testing.T) {
	uc := analytics.NewSalesAnalyticsUseCase(seededStore(t).Analytics(), nil, 0)

	top, err := uc.TopProducts(context.Background(), ptr(windowStart), ptr(windowEnd), 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "p1", top[0].ProductID)
	assert.Equal(t, "Harina", top[0].Name)
	assert.True(t, top[0].QtySold.Equal(decimal.NewFromInt(3)))
	assert.True(t, top[0].Revenue.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "p2", top[1].ProductID)

	top, err = uc.TopProducts(context.Background(), ptr(windowStart), ptr(windowEnd), 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestInvalidRange(t *testing.T) {
	uc := analytics.NewSalesAnalyticsUseCase(seededStore(t).Analytics(), nil, 0)
	_, err := uc.Summary(context.Background(), ptr(windowEnd), ptr(windowStart))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCachedReadsUntilInvalidated(t *testing.T) {
	store := seededStore(t)
	repo := &countingRepo{AnalyticsRepository: store.Analytics()}
	c := newCache(t)
	uc := analytics.NewSalesAnalyticsUseCase(repo, c, 0)
	ctx := context.Background()

	first, err := uc.Summary(ctx, ptr(windowStart), ptr(windowEnd))
	require.NoError(t, err)
	assert.Equal(t, int32(2), repo.lines.Load(), "período actual y anterior")

	second, err := uc.Summary(ctx, ptr(windowStart), ptr(windowEnd))
	require.NoError(t, err)
	assert.Equal(t, int32(2), repo.lines.Load(), "la segunda lectura sale de la caché")
	assert.True(t, first.TotalRevenue.Equal(second.TotalRevenue))

	_, err = uc.TopProducts(ctx, ptr(windowStart), ptr(windowEnd), 5)
	require.NoError(t, err)
	_, err = uc.TopProducts(ctx, ptr(windowStart), ptr(windowEnd), 5)
	require.NoError(t, err)
	assert.Equal(t, int32(1), repo.top.Load())

	// nueva venta confirmada + invalidación
	require.NoError(t, store.Repos().Sales.Create(ctx, &entity.Sale{
		ID: "s5", Status: entity.SaleStatusConfirmed, WarehouseID: "w1",
		CreatedAt: time.Date(2025, 3, 2, 18, 0, 0, 0, time.UTC), Items: []entity.SaleItem{item("p2", 2, 10)},
	}))
	require.NoError(t, c.Invalidate(ctx))

	third, err := uc.Summary(ctx, ptr(windowStart), ptr(windowEnd))
	require.NoError(t, err)
	assert.Equal(t, int32(4), repo.lines.Load())
	assert.True(t, third.TotalRevenue.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 3, third.TotalOrders)
}
