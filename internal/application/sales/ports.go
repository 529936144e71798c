package sales

import (
	"context"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

// StockReserver reserva stock para una venta usando el repo de la transacción del caller.
// Si retorna error, el caller debe hacer rollback.
type StockReserver interface {
	ReserveInTx(ctx context.Context, movRepo repository.StockMovementRepository, sale *entity.Sale, now time.Time) error
}
