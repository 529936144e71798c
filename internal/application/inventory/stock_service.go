package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

// StockService escribe en el libro los movimientos que producen ventas y comprobantes.
// Siempre se usa con los repos de la transacción del caller (ventas, facturación).
type StockService struct{}

// NewStockService construye el servicio.
func NewStockService() *StockService { return &StockService{} }

// ReserveInTx agrega un RESERVE por línea, referenciado a la venta.
func (s *StockService) ReserveInTx(ctx context.Context, movRepo repository.StockMovementRepository, sale *entity.Sale, now time.Time) error {
	return s.appendPerItem(ctx, movRepo, sale, entity.MovementTypeRESERVE, entity.SaleReference(sale.ID), now)
}

// ReleaseInTx agrega un RELEASE por línea, que compensa la reserva de la venta.
func (s *StockService) ReleaseInTx(ctx context.Context, movRepo repository.StockMovementRepository, sale *entity.Sale, now time.Time) error {
	return s.appendPerItem(ctx, movRepo, sale, entity.MovementTypeRELEASE, entity.SaleReference(sale.ID), now)
}

// CommitInTx agrega un COMMIT por línea, referenciado al documento emitido.
func (s *StockService) CommitInTx(ctx context.Context, movRepo repository.StockMovementRepository, sale *entity.Sale, documentID string, now time.Time) error {
	return s.appendPerItem(ctx, movRepo, sale, entity.MovementTypeCOMMIT, entity.DocumentReference(documentID), now)
}

func (s *StockService) appendPerItem(ctx context.Context, movRepo repository.StockMovementRepository, sale *entity.Sale, typ, ref string, now time.Time) error {
	for _, it := range sale.Items {
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   it.ProductID,
			WarehouseID: sale.WarehouseID,
			Quantity:    it.Quantity,
			Type:        typ,
			Reference:   ref,
			CreatedAt:   now,
		}
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}
