package billing

import (
	"context"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// StockWriter interfaz para integrar facturación con inventario.
// Los métodos usan el repo de movimientos del caller (misma transacción); si retornan error
// el caller debe hacer rollback.
type StockWriter interface {
	CommitInTx(ctx context.Context, movRepo repository.StockMovementRepository, sale *entity.Sale, documentID string, now time.Time) error
	ReleaseInTx(ctx context.Context, movRepo repository.StockMovementRepository, sale *entity.Sale, now time.Time) error
}

// InvoicePoster interfaz para integrar facturación con la cuenta corriente.
type InvoicePoster interface {
	PostInvoiceInTx(ctx context.Context, ledger repository.ReceivableLedgerRepository, customerID string, amount decimal.Decimal, documentID string, now time.Time) error
}
