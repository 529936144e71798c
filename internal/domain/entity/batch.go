package entity

import "time"

// Batch lote de recepción con su metadata de vencimiento. No se modifica después de creado.
type Batch struct {
	ID              string
	ProductID       string
	SKU             string // copia del SKU del producto al momento de recibir
	ManufactureDate *time.Time
	ExpiryDate      *time.Time
	ReceivedAt      time.Time
}
