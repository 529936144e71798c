package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrendPointDTO punto de la serie de ingresos. Date es la etiqueta corta (15:04 o 02/01).
type TrendPointDTO struct {
	Date     string          `json:"date"`
	FullDate string          `json:"full_date"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// SalesTrendResponse serie completa, sin huecos.
type SalesTrendResponse struct {
	Granularity string          `json:"granularity"`
	TZOffset    int             `json:"tz_offset"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	Points      []TrendPointDTO `json:"points"`
}

// SalesSummaryResponse totales del período y variación contra el período anterior.
type SalesSummaryResponse struct {
	Start              time.Time       `json:"start"`
	End                time.Time       `json:"end"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalOrders        int             `json:"total_orders"`
	AvgOrderValue      decimal.Decimal `json:"avg_order_value"`
	RevenueTrend       decimal.Decimal `json:"revenue_trend"`
	OrdersTrend        decimal.Decimal `json:"orders_trend"`
	AvgOrderValueTrend decimal.Decimal `json:"avg_order_value_trend"`
}

// TopProductDTO producto más vendido del período.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	QtySold   decimal.Decimal `json:"qty_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}
