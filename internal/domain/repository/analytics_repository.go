package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SaleLine línea de una venta CONFIRMED con el timestamp crudo de la venta.
// Lo produce la DB; el use case lo agrupa.
type SaleLine struct {
	SaleID    string
	CreatedAt time.Time
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Revenue cantidad por precio de la línea.
func (l SaleLine) Revenue() decimal.Decimal { return l.Quantity.Mul(l.UnitPrice) }

// TopProductResult producto más vendido en el período.
type TopProductResult struct {
	ProductID   string
	SKU         string
	ProductName string
	UnitsSold   decimal.Decimal
	Revenue     decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para analítica de ventas.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// ConfirmedSaleLines líneas de ventas CONFIRMED con created_at en [start, end].
	ConfirmedSaleLines(ctx context.Context, start, end time.Time) ([]SaleLine, error)

	// TopProducts productos por unidades vendidas descendente, como máximo limit.
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductResult, error)
}
