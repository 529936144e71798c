package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryDTO asiento de cuenta corriente.
type LedgerEntryDTO struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	Reference string          `json:"reference"`
	CreatedAt time.Time       `json:"created_at"`
}

// LedgerResponse asientos del cliente (más recientes primero) y saldo.
type LedgerResponse struct {
	CustomerID string           `json:"customer_id"`
	Balance    decimal.Decimal  `json:"balance"`
	Entries    []LedgerEntryDTO `json:"entries"`
}

// BalanceResponse saldo de la cuenta corriente. Positivo = el cliente debe.
type BalanceResponse struct {
	CustomerID string          `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
}

// CreatePaymentRequest body para POST /api/payments.
type CreatePaymentRequest struct {
	CustomerID     string          `json:"customer_id" validate:"required"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method" validate:"required,max=50"`
	IdempotencyKey string          `json:"idempotency_key,omitempty" validate:"max=100"`
}

// PaymentResponse salida de un cobro.
type PaymentResponse struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PaymentListResponse lista paginada de cobros.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
