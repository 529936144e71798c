package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveStockRequest body para POST /api/inventory/receive.
type ReceiveStockRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	WarehouseID     string          `json:"warehouse_id" validate:"required"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	ManufactureDate *time.Time      `json:"manufacture_date,omitempty"`
}

// ReceiveBatchItem línea de una recepción por lote. SupplierID tiene prioridad sobre el default.
type ReceiveBatchItem struct {
	ProductID       string          `json:"product_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	ManufactureDate *time.Time      `json:"manufacture_date,omitempty"`
}

// ReceiveBatchRequest body para POST /api/inventory/receive-batch.
type ReceiveBatchRequest struct {
	WarehouseID string             `json:"warehouse_id" validate:"required"`
	SupplierID  string             `json:"supplier_id,omitempty"`
	Items       []ReceiveBatchItem `json:"items" validate:"required,min=1,dive"`
}

// ReceiveBatchResponse cantidad de líneas registradas.
type ReceiveBatchResponse struct {
	Count int `json:"count"`
}

// AdjustStockRequest body para POST /api/inventory/adjust. Quantity lleva signo.
type AdjustStockRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason,omitempty" validate:"max=200"`
}

// MovementResponse resultado de registrar un movimiento.
type MovementResponse struct {
	MovementID string `json:"movement_id"`
	BatchID    string `json:"batch_id,omitempty"`
}

// StockLevelDTO saldo de un producto sumado en todas las bodegas y lotes.
type StockLevelDTO struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// StockLevelListResponse listado de saldos con la proyección usada.
type StockLevelListResponse struct {
	Projection string          `json:"projection"`
	Items      []StockLevelDTO `json:"items"`
}

// LowStockAlertDTO producto con saldo <= umbral.
type LowStockAlertDTO struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Threshold   decimal.Decimal `json:"threshold"`
}

// BatchStockDTO detalle de un lote dentro de un proveedor.
type BatchStockDTO struct {
	SKU        string          `json:"sku"`
	Quantity   decimal.Decimal `json:"qty"`
	ExpiryDate *time.Time      `json:"expiry"`
}

// SupplierStockDTO saldo agregado por proveedor.
type SupplierStockDTO struct {
	Supplier string          `json:"supplier"`
	Quantity decimal.Decimal `json:"qty"`
	Batches  []BatchStockDTO `json:"batches"`
}

// StockDetailsResponse desglose de stock de un producto por proveedor y lote.
type StockDetailsResponse struct {
	ProductID string             `json:"product_id"`
	Total     decimal.Decimal    `json:"total"`
	Suppliers []SupplierStockDTO `json:"suppliers"`
}

// ExpiringBatchDTO lote vencido o por vencer con saldo.
type ExpiringBatchDTO struct {
	BatchID         string          `json:"batch_id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	SKU             string          `json:"sku"`
	ExpiryDate      time.Time       `json:"expiry_date"`
	Quantity        decimal.Decimal `json:"quantity"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
	Expired         bool            `json:"expired"`
}
