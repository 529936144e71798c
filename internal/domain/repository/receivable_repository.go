package repository

import (
	"context"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
)

// ReceivableLedgerRepository cuenta corriente de clientes (append-only).
type ReceivableLedgerRepository interface {
	Append(ctx context.Context, e *entity.LedgerEntry) error
	// ListByCustomer asientos del cliente, más recientes primero.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.LedgerEntry, error)
}

// PaymentRepository cobros recibidos.
type PaymentRepository interface {
	// Create falla con domain.ErrConflict si la clave de idempotencia ya existe.
	Create(ctx context.Context, p *entity.Payment) error
	ExistsByIdempotencyKey(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, customerID string, limit, offset int) ([]*entity.Payment, error)
}
