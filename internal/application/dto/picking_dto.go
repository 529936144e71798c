package dto

import "time"

// Resultados de una lectura de picking.
const (
	ScanResultMatch    = "MATCH"
	ScanResultMismatch = "MISMATCH"
	ScanResultNotFound = "NOT_FOUND"
)

// CreatePickTaskRequest body para POST /api/picking/tasks.
type CreatePickTaskRequest struct {
	SaleID string `json:"sale_id" validate:"required"`
}

// PickItemProgress avance de una línea del pedido.
type PickItemProgress struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	RequiredQty int    `json:"required_qty"`
	ScannedQty  int    `json:"scanned_qty"`
}

// PickTaskResponse tarea con el avance por línea.
type PickTaskResponse struct {
	ID        string             `json:"id"`
	SaleID    string             `json:"sale_id"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	Items     []PickItemProgress `json:"items"`
}

// ScanRequest body para POST /api/picking/scan.
type ScanRequest struct {
	TaskID  string `json:"task_id" validate:"required"`
	Barcode string `json:"barcode" validate:"required"`
}

// ScanResponse resultado de la lectura. En NOT_FOUND y MISMATCH las cantidades son 0.
type ScanResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	ProductID   string `json:"product_id,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	ScannedQty  int    `json:"scanned_qty"`
	RequiredQty int    `json:"required_qty"`
	TaskStatus  string `json:"task_status,omitempty"`
}
