package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type analyticsRepo struct {
	s *Store
}

func (r *analyticsRepo) ConfirmedSaleLines(_ context.Context, start, end time.Time) ([]repository.SaleLine, error) {
	var out []repository.SaleLine
	err := r.s.with(false, func(st *state) error {
		for _, id := range st.saleIDs {
			s := st.sales[id]
			if s.Status != entity.SaleStatusConfirmed || s.CreatedAt.Before(start) || s.CreatedAt.After(end) {
				continue
			}
			for _, it := range s.Items {
				out = append(out, repository.SaleLine{
					SaleID:    s.ID,
					CreatedAt: s.CreatedAt,
					ProductID: it.ProductID,
					Quantity:  it.Quantity,
					UnitPrice: it.UnitPrice,
				})
			}
		}
		return nil
	})
	return out, err
}

func (r *analyticsRepo) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	lines, err := r.ConfirmedSaleLines(ctx, start, end)
	if err != nil {
		return nil, err
	}
	agg := make(map[string]*repository.TopProductResult)
	var order []string
	for _, l := range lines {
		row, ok := agg[l.ProductID]
		if !ok {
			row = &repository.TopProductResult{ProductID: l.ProductID, UnitsSold: decimal.Zero, Revenue: decimal.Zero}
			agg[l.ProductID] = row
			order = append(order, l.ProductID)
		}
		row.UnitsSold = row.UnitsSold.Add(l.Quantity)
		row.Revenue = row.Revenue.Add(l.Revenue())
	}
	_ = r.s.with(false, func(st *state) error {
		for id, row := range agg {
			if p, ok := st.products[id]; ok {
				row.SKU = p.SKU
				row.ProductName = p.Name
			}
		}
		return nil
	})
	out := make([]repository.TopProductResult, 0, len(order))
	for _, id := range order {
		out = append(out, *agg[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UnitsSold.GreaterThan(out[j].UnitsSold) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
