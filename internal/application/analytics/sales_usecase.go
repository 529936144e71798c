// Package analytics contiene los casos de uso de reportes de ventas: serie de ingresos,
// resumen contra el período anterior y productos más vendidos.
package analytics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/analytics"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTopProducts = 5
	maxTopProducts     = 100
)

// SalesAnalyticsUseCase agrega ventas CONFIRMED en series y totales.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// tzOffset es el desplazamiento horario del negocio; se aplica a cada venta antes de agrupar.
type SalesAnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         Cache
	tzOffset      int
}

// NewSalesAnalyticsUseCase construye el caso de uso. cache puede ser nil.
func NewSalesAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository, cache Cache, tzOffset int) *SalesAnalyticsUseCase {
	return &SalesAnalyticsUseCase{analyticsRepo: analyticsRepo, cache: cache, tzOffset: tzOffset}
}

// resolve aplica la ventana por defecto (últimos 7 días) y valida el rango.
func resolve(start, end *time.Time) (analytics.Window, error) {
	w := analytics.ResolveWindow(start, end, time.Now().UTC().Truncate(time.Minute))
	if !w.End.After(w.Start) {
		return w, fmt.Errorf("rango de fechas inválido: %w", domain.ErrInvalidInput)
	}
	return w, nil
}

// SalesTrend serie de ingresos sin huecos. Por hora si la ventana dura menos de 48h, por día si no.
func (uc *SalesAnalyticsUseCase) SalesTrend(ctx context.Context, start, end *time.Time) (*dto.SalesTrendResponse, error) {
	w, err := resolve(start, end)
	if err != nil {
		return nil, err
	}
	var out dto.SalesTrendResponse
	err = uc.fetch(ctx, &out, func(ctx context.Context) (interface{}, error) {
		lines, err := uc.analyticsRepo.ConfirmedSaleLines(ctx, w.Start, w.End)
		if err != nil {
			return nil, fmt.Errorf("ventas del período: %w", err)
		}
		samples := make([]analytics.Sample, 0, len(lines))
		for _, l := range lines {
			samples = append(samples, analytics.Sample{At: l.CreatedAt.UTC(), Revenue: l.Revenue()})
		}
		g, points := analytics.Trend(w, uc.tzOffset, samples)
		resp := &dto.SalesTrendResponse{
			Granularity: string(g),
			TZOffset:    uc.tzOffset,
			Start:       w.Start,
			End:         w.End,
			Points:      make([]dto.TrendPointDTO, 0, len(points)),
		}
		for _, p := range points {
			resp.Points = append(resp.Points, dto.TrendPointDTO{Date: p.Label, FullDate: p.Key, Revenue: p.Revenue})
		}
		return resp, nil
	}, "trend", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339), strconv.Itoa(uc.tzOffset))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Summary totales del período y variación porcentual contra el período anterior de igual duración.
// Las dos consultas corren en paralelo.
func (uc *SalesAnalyticsUseCase) Summary(ctx context.Context, start, end *time.Time) (*dto.SalesSummaryResponse, error) {
	w, err := resolve(start, end)
	if err != nil {
		return nil, err
	}
	var out dto.SalesSummaryResponse
	err = uc.fetch(ctx, &out, func(ctx context.Context) (interface{}, error) {
		var current, previous analytics.Totals
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			t, err := uc.totals(gctx, w)
			current = t
			return err
		})
		g.Go(func() error {
			t, err := uc.totals(gctx, w.Previous())
			previous = t
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return &dto.SalesSummaryResponse{
			Start:              w.Start,
			End:                w.End,
			TotalRevenue:       current.Revenue,
			TotalOrders:        current.Orders,
			AvgOrderValue:      current.AverageOrderValue(),
			RevenueTrend:       analytics.PercentChange(current.Revenue, previous.Revenue),
			OrdersTrend:        analytics.PercentChange(decimalInt(current.Orders), decimalInt(previous.Orders)),
			AvgOrderValueTrend: analytics.PercentChange(current.AverageOrderValue(), previous.AverageOrderValue()),
		}, nil
	}, "summary", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TopProducts productos por unidades vendidas (por defecto 5).
func (uc *SalesAnalyticsUseCase) TopProducts(ctx context.Context, start, end *time.Time, limit int) ([]dto.TopProductDTO, error) {
	w, err := resolve(start, end)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTopProducts
	}
	if limit > maxTopProducts {
		limit = maxTopProducts
	}
	out := []dto.TopProductDTO{}
	err = uc.fetch(ctx, &out, func(ctx context.Context) (interface{}, error) {
		rows, err := uc.analyticsRepo.TopProducts(ctx, w.Start, w.End, limit)
		if err != nil {
			return nil, fmt.Errorf("productos más vendidos: %w", err)
		}
		list := make([]dto.TopProductDTO, 0, len(rows))
		for _, r := range rows {
			list = append(list, dto.TopProductDTO{
				ProductID: r.ProductID,
				SKU:       r.SKU,
				Name:      r.ProductName,
				QtySold:   r.UnitsSold,
				Revenue:   r.Revenue,
			})
		}
		return list, nil
	}, "top_products", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339), strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *SalesAnalyticsUseCase) totals(ctx context.Context, w analytics.Window) (analytics.Totals, error) {
	lines, err := uc.analyticsRepo.ConfirmedSaleLines(ctx, w.Start, w.End)
	if err != nil {
		return analytics.Totals{}, fmt.Errorf("ventas del período: %w", err)
	}
	ls := make([]analytics.Line, 0, len(lines))
	for _, l := range lines {
		ls = append(ls, analytics.Line{SaleID: l.SaleID, Revenue: l.Revenue()})
	}
	return analytics.Totalize(ls), nil
}

// fetch pasa por la caché cuando está configurada; si no, ejecuta el loader directamente.
func (uc *SalesAnalyticsUseCase) fetch(ctx context.Context, dest interface{}, loader func(context.Context) (interface{}, error), parts ...string) error {
	if uc.cache == nil {
		return fetchDirect(ctx, dest, loader)
	}
	key, err := uc.cache.BuildKey(ctx, append([]string{"analytics", "sales"}, parts...)...)
	if err != nil {
		return fmt.Errorf("cache key: %w", err)
	}
	return uc.cache.FetchJSON(ctx, key, dest, loader)
}
