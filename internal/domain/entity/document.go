package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un documento comercial.
const (
	DocumentStatusDraft  = "DRAFT"
	DocumentStatusIssued = "ISSUED"
	DocumentStatusVoid   = "VOID"
)

// Document comprobante emitido a partir de una venta. Total se calcula al emitir.
type Document struct {
	ID        string
	SaleID    string
	Status    string
	Total     decimal.Decimal
	CreatedAt time.Time
}

// DocumentReference referencia usada en movimientos COMMIT y en la cuenta corriente.
func DocumentReference(documentID string) string { return "DOC-" + documentID }
