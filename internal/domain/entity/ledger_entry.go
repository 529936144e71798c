package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento de cuenta corriente.
const (
	LedgerEntryTypeInvoice    = "INVOICE"
	LedgerEntryTypePayment    = "PAYMENT"
	LedgerEntryTypeAdjustment = "ADJUSTMENT"
)

// LedgerEntry asiento inmutable de la cuenta corriente de un cliente.
// Amount positivo = débito (el cliente debe más); negativo = crédito.
type LedgerEntry struct {
	ID         string
	CustomerID string
	Amount     decimal.Decimal
	Type       string
	Reference  string
	CreatedAt  time.Time
}
