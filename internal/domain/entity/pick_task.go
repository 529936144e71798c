package entity

import "time"

// Estados de una tarea de picking.
const (
	PickTaskStatusPending    = "PENDING"
	PickTaskStatusInProgress = "IN_PROGRESS"
	PickTaskStatusCompleted  = "COMPLETED"
)

// PickTask tarea de preparación de un pedido confirmado (una por venta).
type PickTask struct {
	ID        string
	SaleID    string
	Status    string
	CreatedAt time.Time
}

// PickScanEvent lectura de código de barras registrada en una tarea.
type PickScanEvent struct {
	ID             string
	TaskID         string
	BarcodeScanned string
	ProductID      string
	Timestamp      time.Time
}
