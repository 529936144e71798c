package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta. Sin unit_price se toma el precio de catálogo; un 0 explícito es una línea sin cargo.
type SaleItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	WarehouseID string            `json:"warehouse_id" validate:"required"`
	CustomerID  string            `json:"customer_id,omitempty"`
	Items       []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse línea con su subtotal.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          string             `json:"id"`
	Status      string             `json:"status"`
	WarehouseID string             `json:"warehouse_id"`
	CustomerID  string             `json:"customer_id,omitempty"`
	Total       decimal.Decimal    `json:"total"`
	CreatedAt   time.Time          `json:"created_at"`
	Items       []SaleItemResponse `json:"items"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
