package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment cobro recibido de un cliente.
type Payment struct {
	ID             string
	CustomerID     string
	Amount         decimal.Decimal
	Method         string
	IdempotencyKey string // vacío = sin clave
	CreatedAt      time.Time
}

// PaymentReference referencia del crédito en la cuenta corriente.
func PaymentReference(paymentID string) string { return "PAY-" + paymentID }
