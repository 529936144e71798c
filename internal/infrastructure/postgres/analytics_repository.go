package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre ventas confirmadas.
// El agrupamiento por día/hora y la zona horaria se resuelven en Go, no en SQL.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el repositorio.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

const sqlConfirmedSaleLines = `
	SELECT s.id, s.created_at, si.product_id, si.quantity, si.unit_price
	FROM sales s
	JOIN sale_items si ON si.sale_id = s.id
	WHERE s.status = $1
	  AND s.created_at >= $2
	  AND s.created_at <= $3
	ORDER BY s.created_at, s.id, si.line_no`

// ConfirmedSaleLines líneas de ventas CONFIRMED en [start, end].
func (r *AnalyticsRepo) ConfirmedSaleLines(ctx context.Context, start, end time.Time) ([]repository.SaleLine, error) {
	rows, err := r.q.Query(ctx, sqlConfirmedSaleLines, entity.SaleStatusConfirmed, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics confirmed sale lines: %w", err)
	}
	defer rows.Close()

	var out []repository.SaleLine
	for rows.Next() {
		var l repository.SaleLine
		if err := rows.Scan(&l.SaleID, &l.CreatedAt, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

const sqlTopProducts = `
	SELECT p.id, p.sku, p.name,
	       COALESCE(SUM(si.quantity), 0)                 AS units_sold,
	       COALESCE(SUM(si.quantity * si.unit_price), 0) AS revenue
	FROM sale_items si
	JOIN sales s    ON s.id = si.sale_id
	JOIN products p ON p.id = si.product_id
	WHERE s.status = $1
	  AND s.created_at >= $2
	  AND s.created_at <= $3
	GROUP BY p.id, p.sku, p.name
	ORDER BY units_sold DESC, revenue DESC, p.sku
	LIMIT $4`

// TopProducts productos más vendidos por unidades en [start, end].
func (r *AnalyticsRepo) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	rows, err := r.q.Query(ctx, sqlTopProducts, entity.SaleStatusConfirmed, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics top products: %w", err)
	}
	defer rows.Close()

	var out []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.SKU, &t.ProductName, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
