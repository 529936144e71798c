package repository

import (
	"context"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
)

// MovementFilter restringe el listado de movimientos. Campos vacíos no filtran.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	BatchID     string
	SupplierID  string
}

// StockMovementRepository libro de movimientos de stock (append-only).
// No expone Update ni Delete: las correcciones son movimientos compensatorios.
type StockMovementRepository interface {
	// Append falla con domain.ErrNotFound si el producto o la bodega no existen.
	Append(ctx context.Context, m *entity.StockMovement) error
	// List devuelve los movimientos ordenados por fecha de creación.
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, error)
	// TotalsByProduct suma las cantidades por producto y tipo, sobre todas las bodegas y lotes.
	TotalsByProduct(ctx context.Context) ([]entity.MovementTotal, error)
	// TotalsByBatch suma las cantidades por lote y tipo. Los movimientos sin lote no cuentan.
	TotalsByBatch(ctx context.Context) ([]entity.MovementTotal, error)
}

// BatchRepository registro de lotes.
type BatchRepository interface {
	Create(ctx context.Context, b *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	// ListExpiringBefore lotes con fecha de vencimiento <= cutoff (incluye vencidos).
	ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]*entity.Batch, error)
}
